package renderer

import "errors"

var (
	ErrInvalidConfig = errors.New("renderer: invalid configuration")
	ErrInterrupted   = errors.New("renderer: interrupted while rendering")
	ErrWorkerFailed  = errors.New("renderer: worker failed")
)
