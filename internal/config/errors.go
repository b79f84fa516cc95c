package config

import "github.com/cockroachdb/errors"

var (
	ErrNilConfig        = errors.New("config is nil")
	ErrValidationFailed = errors.New("config validation failed")
)
