package brief

import (
	"fmt"

	"newsbrief/internal/domain"
)

// Each of these matches domain.ErrInvalidRequest with errors.Is.
var (
	ErrURLRequired             = fmt.Errorf("URL is required: %w", domain.ErrInvalidRequest)
	ErrInvalidURL              = fmt.Errorf("URL is invalid: %w", domain.ErrInvalidRequest)
	ErrSentenceCountOutOfRange = fmt.Errorf("sentence count is out of range: %w", domain.ErrInvalidRequest)
	ErrLimitOutOfRange         = fmt.Errorf("limit is out of range: %w", domain.ErrInvalidRequest)
)
