package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Global validator instance for reuse
var validate = validator.New()

// maxRequestBodyBytes bounds request bodies; catalog payloads are tiny.
const maxRequestBodyBytes = 1 << 20

// DecodeJSON decodes the request body into the given struct. Bodies larger
// than maxRequestBodyBytes fail decoding.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)).Decode(v)
}

// ValidateRequest validates the given struct. Types implementing their own
// Validate method take precedence over struct tags.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
