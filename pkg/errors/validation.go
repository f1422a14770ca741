package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxIDLength bounds photo identifiers accepted from the listing service
// or from layout requests.
const maxIDLength = 256

// ValidateID validates an opaque photo identifier.
//
// The rules are conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidPhoto, "photo id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidPhoto, "photo id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPhoto, "photo id contains invalid control characters")
		}
	}
	return nil
}

// ValidateDimension checks that an intrinsic pixel dimension is positive.
// Heights are used as layout divisors, so zero is rejected as well.
func ValidateDimension(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidPhoto, "%s must be positive, got %d", name, v)
	}
	return nil
}

// ValidateURL validates an image locator.
// It ensures the URL is non-empty, parses, and has an http or https scheme.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidPhoto, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidPhoto, err, "URL %q does not parse", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidPhoto, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidPhoto, "URL must have a host")
	}
	return nil
}

// ValidatePage checks pagination arguments for the listing service.
func ValidatePage(page, size int) error {
	if page < 1 {
		return New(ErrCodeInvalidInput, "page must be >= 1, got %d", page)
	}
	if size <= 0 {
		return New(ErrCodeInvalidInput, "page size must be positive, got %d", size)
	}
	return nil
}
