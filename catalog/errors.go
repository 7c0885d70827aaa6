package catalog

import "fmt"

// FetchError reports that the product feed could not be loaded
type FetchError struct {
	Source string // Human-readable description of the feed location
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch products from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError reports rejected user input; the previous state is kept
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
