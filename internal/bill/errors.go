package bill

import "errors"

var (
	ErrNotFound            = errors.New("bill not found")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrValidation          = errors.New("invalid bill")
	ErrStorage             = errors.New("storage error")
)
