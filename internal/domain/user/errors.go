package user

import "errors"

var (
	ErrPermissionRequired = errors.New("missing required payroll permission")
	ErrInvalidActor       = errors.New("actor claims are missing or invalid")
)
