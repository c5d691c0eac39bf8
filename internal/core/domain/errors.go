package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrQuoteNotFound    = errors.New("quote not found")
)
