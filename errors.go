package main

import (
	"errors"
	"fmt"
)

// ErrorKind classifies viewer failures so callers can recover instead of exiting
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	PathNotFound
	UnsupportedFormat
	DecodeFailure
	EmptyDirectory
)

func (k ErrorKind) String() string {
	switch k {
	case PathNotFound:
		return "path not found"
	case UnsupportedFormat:
		return "unsupported format"
	case DecodeFailure:
		return "decode failure"
	case EmptyDirectory:
		return "empty directory"
	default:
		return "unknown error"
	}
}

// Sentinels for errors.Is; they match any ViewerError of the same kind
var (
	ErrPathNotFound      = &ViewerError{Kind: PathNotFound}
	ErrUnsupportedFormat = &ViewerError{Kind: UnsupportedFormat}
	ErrDecodeFailure     = &ViewerError{Kind: DecodeFailure}
	ErrEmptyDirectory    = &ViewerError{Kind: EmptyDirectory}
)

// ViewerError carries the kind, the offending path and the underlying cause
type ViewerError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func newViewerError(kind ErrorKind, path string, err error) *ViewerError {
	return &ViewerError{Kind: kind, Path: path, Err: err}
}

func (e *ViewerError) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ViewerError) Unwrap() error {
	return e.Err
}

// Is matches on kind so wrapped errors compare equal to the sentinels
func (e *ViewerError) Is(target error) bool {
	t, ok := target.(*ViewerError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// errorKind returns the kind of the first ViewerError in err's chain
func errorKind(err error) ErrorKind {
	var ve *ViewerError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return KindUnknown
}
