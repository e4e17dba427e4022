package client

import (
	"fmt"
	"strings"

	"github.com/fetidd/webservices-frontend/internal/requesttype"
)

// ValidationError is a field value that failed its schema validator. It is
// a correctable user-input error, raised before any network call.
type ValidationError struct {
	Field string
	Label string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s (%s)", e.Value, e.Label, e.Field)
}

// MissingFieldsError lists the required fields a request cannot be
// submitted without.
type MissingFieldsError struct {
	RequestType requesttype.RequestType
	Fields      []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s request is missing required fields: %s",
		e.RequestType, strings.Join(e.Fields, ", "))
}
