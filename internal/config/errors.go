package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDefaultRule error if the configured default rule tag is not a known sort rule.
	ErrUnknownDefaultRule = errors.New("toml config autogroup.defaultrule is not a known sort rule")
)
