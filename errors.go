// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texres

import (
	"errors"
	"strings"
)

// Error kinds. Every failure surfaced by the texture subsystem matches
// exactly one of these with errors.Is.
var (
	// ErrSource is returned when a requested byte stream could not be read
	// (missing asset, archive failure).
	ErrSource = errors.New("texres: source unavailable")

	// ErrDecode is returned when bytes are not a supported image format, or
	// when a raw buffer does not match its declared dimensions.
	ErrDecode = errors.New("texres: decode failed")

	// ErrGraphicsAllocation is returned when a texture or sampler object
	// could not be created.
	ErrGraphicsAllocation = errors.New("texres: graphics allocation failed")

	// ErrUnsupported is returned for recognized configurations that are not
	// implemented (SDF textures, raw texture wrapping, stream sources).
	ErrUnsupported = errors.New("texres: unsupported configuration")
)

// Error records a failed texture operation together with its kind and the
// underlying cause.
type Error struct {
	// Op is the operation that failed ("read", "decode", "upload", ...).
	Op string

	// Name is the logical path or cache name involved, if any.
	Name string

	// Kind is one of ErrSource, ErrDecode, ErrGraphicsAllocation or ErrUnsupported.
	Kind error

	// Err is the underlying cause. May be nil.
	Err error
}

// NewError returns an *Error for the given operation and kind.
func NewError(op, name string, kind, err error) *Error {
	return &Error{Op: op, Name: name, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("texres: ")
	b.WriteString(e.Op)
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	b.WriteString(": ")
	b.WriteString(strings.TrimPrefix(e.kindText(), "texres: "))
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) kindText() string {
	if e.Kind == nil {
		return "unknown error"
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf reports which error kind err belongs to, or nil if it matches none.
func KindOf(err error) error {
	for _, kind := range []error{ErrSource, ErrDecode, ErrGraphicsAllocation, ErrUnsupported} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
