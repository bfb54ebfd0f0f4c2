package dispatch

import (
	"encoding/json"
	"errors"

	"github.com/oksasatya/taskhub-api/internal/apperr"
)

// Payload is the raw action payload. Keeping the original JSON per
// field preserves the presence/absence distinction that required-field
// and partial-update checks depend on, which a plain struct loses.
type Payload map[string]json.RawMessage

// Has reports whether the field was present in the request body.
func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// Decode unmarshals the payload into a typed request struct. Type
// mismatches are the client's fault and surface as business failures.
func (p Payload) Decode(v any) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return apperr.Businessf("Invalid value for field: %s", ute.Field)
		}
		return apperr.Business("Invalid request payload")
	}
	return nil
}

// String returns the payload field as a string, when present and a
// JSON string.
func (p Payload) String(field string) (string, bool) {
	raw, ok := p[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
