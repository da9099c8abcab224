package domain

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrItemIndexOutOfRange = errors.New("item index out of range")
)
