// Package domain defines the core entities of the city catalog and the
// validation rules that keep them consistent, independent of any transport
// or storage concern.
package domain
