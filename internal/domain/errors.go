package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrMissingInput signals an absent input file or directory.
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidChapter signals an unusable chapter number or chapter key.
	ErrInvalidChapter = errors.New("invalid chapter")
	// ErrMalformedGeometry signals a bounding box with the wrong number of corners.
	ErrMalformedGeometry = errors.New("malformed geometry")
	// ErrMalformedPage signals a raw OCR page payload that cannot be parsed.
	ErrMalformedPage = errors.New("malformed page")
	// ErrMalformedDocument signals a persisted chapter document that cannot be parsed.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrMasterUnreadable signals a master index that exists but cannot be parsed.
	ErrMasterUnreadable = errors.New("master index unreadable")
)
