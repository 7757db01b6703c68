package sentinel

import "fmt"

var _ error = Error("")

// Error is an immutable error value backed by a string constant.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}

// Wrapf returns an error that prefixes the formatted detail with e and
// matches e under errors.Is. Any %w verbs in format keep their own chains
// reachable as well.
func (e Error) Wrapf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{e}, args...)...)
}
