package atlas

import (
	"errors"
	"fmt"
)

// Error kinds returned by the atlas. Use errors.Is to test for them.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTooLarge        = errors.New("image too large for atlas")
	ErrOutOfLayers     = errors.New("out of texture layers")
	ErrInvalidMipmap   = errors.New("mipmapper returned wrong level size")
	ErrFrozen          = errors.New("atlas is frozen")

	ErrInvalidName  = fmt.Errorf("%w: invalid tile name", ErrInvalidArgument)
	ErrInvalidImage = fmt.Errorf("%w: empty image", ErrInvalidArgument)
	ErrUnknownTile  = fmt.Errorf("%w: unknown tile", ErrInvalidArgument)
)

// TileError records a failed atlas operation on a named tile.
type TileError struct {
	Op   string
	Name string
	Err  error
}

func (e *TileError) Error() string {
	return fmt.Sprintf("atlas: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *TileError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidArgument
}
