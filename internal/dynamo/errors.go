package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrParse indicates numeric text that could not be parsed.
	ErrParse = errors.New("dynamo: invalid numeric value")

	// ErrUnknownField indicates an edit targeting a field a body does not have.
	ErrUnknownField = errors.New("dynamo: unknown body field")

	// ErrBodyNotFound indicates a body index or ID that does not resolve.
	ErrBodyNotFound = errors.New("dynamo: body not found")

	// ErrUnknownScenario indicates a scenario name with no preset.
	ErrUnknownScenario = errors.New("dynamo: unknown scenario")

	// ErrUnknownIntegrator indicates an integrator name that is not registered.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// EditError wraps a rejected body edit with the field and raw text.
type EditError struct {
	Field   string
	Raw     string
	Wrapped error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s = %q: %v", e.Field, e.Raw, e.Wrapped)
}

func (e *EditError) Unwrap() error {
	return e.Wrapped
}
