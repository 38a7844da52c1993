package store

import (
	"testing"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
)

func TestCityFilterMatch(t *testing.T) {
	seattle := &domain.City{ID: 1, Name: "Seattle", Description: "The one with the Space Needle"}
	berlin := &domain.City{ID: 2, Name: "Berlin", Description: "On the Spree"}

	tests := []struct {
		name   string
		filter CityFilter
		city   *domain.City
		want   bool
	}{
		{
			name:   "empty filter matches everything",
			filter: CityFilter{},
			city:   seattle,
			want:   true,
		},
		{
			name:   "exact name match",
			filter: CityFilter{Name: "Seattle"},
			city:   seattle,
			want:   true,
		},
		{
			name:   "name match is case-insensitive",
			filter: CityFilter{Name: "sEaTTle"},
			city:   seattle,
			want:   true,
		},
		{
			name:   "name filter is trimmed before matching",
			filter: CityFilter{Name: "  Seattle  "},
			city:   seattle,
			want:   true,
		},
		{
			name:   "partial name does not satisfy name filter",
			filter: CityFilter{Name: "Seat"},
			city:   seattle,
			want:   false,
		},
		{
			name:   "name mismatch",
			filter: CityFilter{Name: "Seattle"},
			city:   berlin,
			want:   false,
		},
		{
			name:   "blank name imposes no constraint",
			filter: CityFilter{Name: "   "},
			city:   berlin,
			want:   true,
		},
		{
			name:   "search matches substring of name",
			filter: CityFilter{SearchQuery: "eatt"},
			city:   seattle,
			want:   true,
		},
		{
			name:   "search matches substring of description",
			filter: CityFilter{SearchQuery: "space needle"},
			city:   seattle,
			want:   true,
		},
		{
			name:   "search is case-insensitive",
			filter: CityFilter{SearchQuery: "SPREE"},
			city:   berlin,
			want:   true,
		},
		{
			name:   "search with no hit",
			filter: CityFilter{SearchQuery: "volcano"},
			city:   berlin,
			want:   false,
		},
		{
			name:   "name and search combine with AND",
			filter: CityFilter{Name: "Seattle", SearchQuery: "needle"},
			city:   seattle,
			want:   true,
		},
		{
			name:   "matching name but failing search is excluded",
			filter: CityFilter{Name: "Seattle", SearchQuery: "spree"},
			city:   seattle,
			want:   false,
		},
		{
			name:   "matching search but failing name is excluded",
			filter: CityFilter{Name: "Berlin", SearchQuery: "needle"},
			city:   seattle,
			want:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Match(tc.city); got != tc.want {
				t.Errorf("Match(%+v) = %v, want %v", tc.city, got, tc.want)
			}
		})
	}
}

func TestCityFilterIsZero(t *testing.T) {
	if !(CityFilter{}).IsZero() {
		t.Error("Expected empty filter to be zero")
	}
	if !(CityFilter{Name: "  ", SearchQuery: "\t"}).IsZero() {
		t.Error("Expected whitespace-only filter to be zero")
	}
	if (CityFilter{Name: "Seattle"}).IsZero() {
		t.Error("Expected name filter to be non-zero")
	}
	if (CityFilter{SearchQuery: "needle"}).IsZero() {
		t.Error("Expected search filter to be non-zero")
	}
}
