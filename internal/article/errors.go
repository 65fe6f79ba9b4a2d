package article

import (
	"fmt"

	"newsbrief/internal/domain"
)

// FetchError reports why an article could not be downloaded or extracted.
// It matches domain.ErrFetch with errors.Is.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch article (URL = %s): %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{domain.ErrFetch, e.Err}
}
