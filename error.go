package match

import "errors"

var (
	ErrInvalidParam = errors.New("the param is invalid")
	ErrNotFound     = errors.New("not found")

	// ErrEmptySide is the panic value when best-of-book is read on an empty side.
	ErrEmptySide = errors.New("order book side is empty")
)
