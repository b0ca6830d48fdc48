package chapterdex

import "github.com/kailas-cloud/chapterdex/internal/domain"

// Errors returned by Client methods; match with errors.Is.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrMissingInput      = domain.ErrMissingInput
	ErrInvalidChapter    = domain.ErrInvalidChapter
	ErrMalformedDocument = domain.ErrMalformedDocument
	ErrMasterUnreadable  = domain.ErrMasterUnreadable
)
