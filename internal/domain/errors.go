package domain

import "errors"

// Классы ошибок ядра. Ошибки слоев (сервисов, use case) оборачивают их,
// поэтому вызывающий код может классифицировать ошибку через errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidationFailed  = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
)
