package store

import "errors"

// Sentinel errors surfaced by store operations.
var (
	ErrTextNotFound  = errors.New("text not found")
	ErrCodeNotFound  = errors.New("access code not found")
	ErrCodeExists    = errors.New("access code already exists")
	ErrVocabNotFound = errors.New("vocabulary not found")
	ErrUnavailable   = errors.New("store unavailable")
)
