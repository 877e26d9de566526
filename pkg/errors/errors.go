// Unified error handling for the FluidCNC Go migration
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import "fmt"

// ErrorCode represents the category of error.
type ErrorCode string

const (
	// Configuration errors
	ErrConfigSection    ErrorCode = "CONFIG_SECTION"
	ErrConfigOption     ErrorCode = "CONFIG_OPTION"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrConfigType       ErrorCode = "CONFIG_TYPE"

	// Planner errors
	ErrPlannerState ErrorCode = "PLANNER_STATE"

	// Move stream errors
	ErrMoveParse ErrorCode = "MOVE_PARSE"

	// Monitor server errors
	ErrMonitor ErrorCode = "MONITOR_SERVER"
)

// HostError is the unified error type for the host system.
type HostError struct {
	// Code is the error category.
	Code ErrorCode

	// Message is a human-readable error description.
	Message string

	// Section is the config section or context.
	Section string

	// Option is the config option name (if applicable).
	Option string

	// Err wraps the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HostError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("[%s:%s] %s", e.Code, e.Option, e.Message)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Code, e.Section, e.Message)
}

// Unwrap returns the underlying error.
func (e *HostError) Unwrap() error {
	return e.Err
}

// SetSection sets the context section.
func (e *HostError) SetSection(section string) *HostError {
	e.Section = section
	return e
}

// SetOption sets the config option.
func (e *HostError) SetOption(option string) *HostError {
	e.Option = option
	return e
}

// New creates a new HostError.
func New(code ErrorCode, message string) *HostError {
	return &HostError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, code ErrorCode, message string) *HostError {
	return &HostError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Config errors

// ConfigSectionError creates an error for a missing config section.
func ConfigSectionError(section string) *HostError {
	return New(ErrConfigSection, fmt.Sprintf("section '%s' not found", section)).
		SetSection(section)
}

// ConfigOptionError creates an error for a missing config option.
func ConfigOptionError(section, option string) *HostError {
	return New(ErrConfigOption, fmt.Sprintf("option '%s' not found in section '%s'", option, section)).
		SetSection(section).
		SetOption(option)
}

// ConfigValidationError creates an error for a config validation failure.
func ConfigValidationError(section, option, reason string) *HostError {
	return New(ErrConfigValidation, fmt.Sprintf("option '%s' in section '%s': %s", option, section, reason)).
		SetSection(section).
		SetOption(option)
}

// ConfigTypeError creates an error for a config type conversion failure.
func ConfigTypeError(section, option, value, targetType string) *HostError {
	return New(ErrConfigType, fmt.Sprintf("option '%s' in section '%s': failed to parse '%s' as %s", option, section, value, targetType)).
		SetSection(section).
		SetOption(option)
}

// Planner errors

// PlannerStateError creates an error for an invalid planner lifecycle
// transition.
func PlannerStateError(reason string) *HostError {
	return New(ErrPlannerState, reason)
}

// Move stream errors

// MoveParseError creates an error for an unparsable move line.
func MoveParseError(line, reason string) *HostError {
	return New(ErrMoveParse, fmt.Sprintf("failed to parse move: %s (reason: %s)", line, reason))
}

// Monitor errors

// MonitorError creates a monitor server error.
func MonitorError(message string) *HostError {
	return New(ErrMonitor, message)
}

// Is checks whether err is a HostError with the given error code.
func Is(err error, code ErrorCode) bool {
	if hostErr, ok := err.(*HostError); ok {
		return hostErr.Code == code
	}
	return false
}

// IsConfig checks whether err is any config error.
func IsConfig(err error) bool {
	return Is(err, ErrConfigSection) ||
		Is(err, ErrConfigOption) ||
		Is(err, ErrConfigValidation) ||
		Is(err, ErrConfigType)
}
