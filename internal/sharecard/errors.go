package sharecard

import "fmt"

// RenderError represents a failure while rasterizing a scene.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// EncodeError represents a failure encoding the finished canvas to PNG.
type EncodeError struct {
	Cause error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode share card: %v", e.Cause)
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}
