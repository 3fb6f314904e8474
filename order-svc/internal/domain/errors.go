package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidOrder  = errors.New("invalid order")
	ErrOrderNotFound = errors.New("order not found")
	ErrNotConfigured = errors.New("not configured")
)

// ConfigError reports a component that cannot run because required settings
// are missing. It matches ErrNotConfigured.
type ConfigError struct {
	Component string
	Missing   []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s not configured: missing %s", e.Component, strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrNotConfigured
}
