package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams matches every error built by InvalidParam.
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrUnknownTool is returned by providers for tool IDs they do not own.
	ErrUnknownTool = errors.New("unknown tool")
)

// ParamError reports a missing or malformed tool parameter.
type ParamError struct {
	msg string
}

func (e *ParamError) Error() string { return e.msg }

// Is makes errors.Is(err, ErrInvalidParams) hold for every ParamError.
func (e *ParamError) Is(target error) bool { return target == ErrInvalidParams }

// InvalidParam builds a ParamError.
func InvalidParam(format string, args ...interface{}) error {
	return &ParamError{msg: fmt.Sprintf(format, args...)}
}

// UnknownTool wraps ErrUnknownTool with the offending ID.
func UnknownTool(toolID string) error {
	return fmt.Errorf("%w: %s", ErrUnknownTool, toolID)
}
