package repository

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrDateBlocked  = errors.New("date already blocked")
	ErrNotPending   = errors.New("booking not pending")
	ErrRoleMismatch = errors.New("role mismatch")
)
