package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrInvalidPage           = errors.New("page must be positive")
)
