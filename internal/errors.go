package internal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPrecondition       = errors.New("precondition failed")
	ErrNotFound           = errors.New("not found")
	ErrFormat             = errors.New("invalid version format")
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrRepositoryNotSet matches ErrPrecondition as well.
	ErrRepositoryNotSet = fmt.Errorf("%w: repository not set - call set_repository first", ErrPrecondition)
)
