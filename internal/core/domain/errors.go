package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupported  = errors.New("unsupported file type")
	ErrNoArtifact   = errors.New("no usable content extracted")
	ErrConversion   = errors.New("conversion failed")
	ErrTimeout      = errors.New("timed out")
	ErrTemporary    = errors.New("temporary failure")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotDirectory = errors.New("not a directory")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
