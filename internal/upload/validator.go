package upload

import (
	"errors"
	"net/http"
)

const (
	// MaxFileSize is the upload ceiling, 10 MiB.
	MaxFileSize = 10 << 20
	// AcceptedMimeType is the only image format the app stores.
	AcceptedMimeType = "image/png"
)

// Rejection reasons. All are client-attributable: never retried, never
// logged as system faults.
var (
	ErrTooLarge  = errors.New("file too large: maximum size is 10MB")
	ErrEmpty     = errors.New("file is empty")
	ErrWrongType = errors.New("invalid file type: only image/png is allowed")
	ErrCorrupt   = errors.New("corrupt or mislabeled file: content is not a valid PNG")
)

// Validate checks an upload before any network call is made. It is a
// pure function of its inputs and runs again at the storage boundary;
// the declared MIME type comes from the client and can lie, the
// signature check on the leading bytes cannot be spoofed as easily.
func Validate(content []byte, declaredMime string) error {
	if len(content) > MaxFileSize {
		return ErrTooLarge
	}
	if len(content) == 0 {
		return ErrEmpty
	}
	if declaredMime != AcceptedMimeType {
		return ErrWrongType
	}
	if http.DetectContentType(content) != AcceptedMimeType {
		return ErrCorrupt
	}
	return nil
}

// IsRejection reports whether err is one of the validation rejections.
func IsRejection(err error) bool {
	return errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrWrongType) ||
		errors.Is(err, ErrCorrupt)
}
