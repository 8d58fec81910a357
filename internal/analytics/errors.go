package analytics

import "fmt"

// ValidationError reports caller-correctable input problems: a field the
// snapshot does not carry, a non-numeric feature column, or an
// out-of-range pagination parameter. The API layer maps it to a rejected
// request; every other engine error is a server-side failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingFieldError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("the %q field is missing from the logs collection", field),
	}
}

func badFieldTypeError(field, want string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("the %q field is not %s", field, want),
	}
}

func pageParamError(name string, value int, reason string) *ValidationError {
	return &ValidationError{
		Field:   name,
		Message: fmt.Sprintf("invalid %s parameter %d: %s", name, value, reason),
	}
}
