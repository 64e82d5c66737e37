package board

import "errors"

var (
	// ErrInvalidBoard is returned when board text cannot be parsed.
	ErrInvalidBoard = errors.New("invalid board")
	// ErrInvalidMove is returned when move text cannot be parsed.
	ErrInvalidMove = errors.New("invalid move")
)
