package conversion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyContent    = errors.New("content is empty")
	ErrContentTooLarge = errors.New("content exceeds the maximum size")
)

// XMLSyntaxError is returned when XML input cannot be tokenized at all.
// It is the only error a conversion run produces.
type XMLSyntaxError struct {
	Err error
}

func (e *XMLSyntaxError) Error() string {
	return fmt.Sprintf("invalid XML content: %v", e.Err)
}

func (e *XMLSyntaxError) Unwrap() error {
	return e.Err
}

// ValidateContent rejects blank input and, when maxBytes is positive,
// input larger than maxBytes.
func ValidateContent(content string, maxBytes int64) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrContentTooLarge, len(content), maxBytes)
	}
	return nil
}
