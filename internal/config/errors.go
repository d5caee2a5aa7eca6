package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrUnknownSetting indicates a get or set on a name that was never
	// registered.
	ErrUnknownSetting = errors.New("no configuration setting")

	// ErrIllegalMutation indicates an attempt to assign a registered
	// setting through the attribute store instead of Set.
	ErrIllegalMutation = errors.New("settings must be changed through Set")
)
