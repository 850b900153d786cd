package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindInvalidImage marks degenerate or malformed source input. Fatal to
	// the run; nothing is generated.
	KindInvalidImage Kind = "invalid_image"
	// KindAspectRatio marks an aspect-ratio gate failure. Recoverable by
	// supplying a different source image.
	KindAspectRatio Kind = "aspect_ratio"
	// KindDecode and KindEncode mark per-entry failures. They are recorded on
	// the entry and never abort the batch.
	KindDecode Kind = "decode"
	KindEncode Kind = "encode"
	// KindIOSetup marks output-directory pre-flight failures. Fatal, raised
	// before any entry is processed.
	KindIOSetup Kind = "iosetup"
	// KindConfig marks programming errors (unknown family, bad built-in
	// table). Should not occur in correct builds.
	KindConfig    Kind = "config"
	KindBootstrap Kind = "bootstrap"
	KindUnknown   Kind = "unknown"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// IsKind checks whether any error in the chain matches the provided kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	for err != nil {
		if errors.As(err, &target) {
			return target.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}

// KindOf reports the kind of the first typed error in the chain, or
// KindUnknown when no typed error is present.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return KindUnknown
}
