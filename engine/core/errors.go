package core

import (
	"errors"
)

var (
	ErrNonFiniteInput = errors.New("non-finite frame input")
	ErrStateCorrupted = errors.New("observer state left the finite range")
	ErrQueueFull      = errors.New("input queue is full")
	ErrNotRunning     = errors.New("engine is not running")
)
