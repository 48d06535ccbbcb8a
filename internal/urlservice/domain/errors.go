package domain

import "errors"

var (
	ErrSlugNotFound      = errors.New("slug not found")
	ErrDestinationUnsafe = errors.New("destination unsafe")
	ErrInvalidSlug       = errors.New("invalid slug")
	ErrCorruptRecord     = errors.New("corrupt link record")
)
