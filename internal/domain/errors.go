package domain

import "errors"

var (
	ErrEmptyPool              = errors.New("no eligible items in pool")
	ErrInvalidSize            = errors.New("size must be between 3 and 9")
	ErrInvalidMode            = errors.New("unknown mode")
	ErrNegativeCount          = errors.New("item count must not be negative")
	ErrCellOutOfRange         = errors.New("cell index out of range")
	ErrCardNotFound           = errors.New("card not found")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
