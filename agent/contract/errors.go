package contract

import "errors"

var (
	ErrModelInvoke = errors.New("model invoke failed")
	ErrGenerate    = errors.New("text generation failed")
	ErrInventory   = errors.New("inventory search failed")
	ErrValidation  = errors.New("validation failed")
)
