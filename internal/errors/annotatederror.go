// Package errors provides annotated errors that carry slog attributes and the
// source location where the annotation happened. It re-exports the stdlib
// helpers so call sites only need one errors import.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// AnnotatedError wraps a cause with a message, slog attributes, and the
// source location of the annotation.
type AnnotatedError struct {
	message string
	cause   error
	attrs   []slog.Attr
	source  string
}

// New returns a plain error, like the stdlib errors.New.
func New(text string) error {
	return stderrors.New(text)
}

// NewSentinel returns a sentinel error meant for errors.Is comparisons.
func NewSentinel(text string) error {
	return stderrors.New(text)
}

// Wrap annotates err with a message and optional slog attributes, recording
// the caller as the annotation source. Wrapping a nil error yields an error
// with only the message, so defensive call sites do not panic.
func Wrap(err error, message string, attrs ...slog.Attr) error {
	return &AnnotatedError{
		message: message,
		cause:   err,
		attrs:   attrs,
		source:  callerSource(2),
	}
}

// Error implements the error interface with the conventional
// "outer: inner: root" chain format.
func (e *AnnotatedError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

// Unwrap exposes the cause for errors.Is and errors.As traversal.
func (e *AnnotatedError) Unwrap() error {
	return e.cause
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join combines errors like the stdlib errors.Join.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Unwrap returns the result of calling Unwrap on err, like the stdlib.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// SlogError renders err as a grouped slog attribute containing the message,
// the outermost annotation source, and all annotations found along the chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	attrs := []slog.Attr{slog.String("message", err.Error())}

	var (
		annotations []slog.Attr
		source      string
	)
	for current := err; current != nil; current = stderrors.Unwrap(current) {
		annotated, ok := current.(*AnnotatedError)
		if !ok {
			continue
		}
		if source == "" {
			source = annotated.source
		}
		annotations = append(annotations, annotated.attrs...)
	}

	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Attr{Key: "annotations", Value: slog.GroupValue(annotations...)})
	}

	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// DecoratePanic converts a recovered panic value into an error pointing at
// the panic recovery site. It returns nil when recovered is nil so it can be
// called unconditionally from deferred handlers.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &AnnotatedError{
		message: fmt.Sprintf("panic: %v", recovered),
		source:  panicSource(),
	}
}

// callerSource returns "file.go:line" for the caller skip frames up.
func callerSource(skip int) string {
	var pcs [1]uintptr
	if runtime.Callers(skip+1, pcs[:]) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}

// panicSource walks the stack to the first frame above runtime.gopanic,
// which is the statement that panicked rather than the recovery site.
func panicSource() string {
	var pcs [64]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	seenPanic := false
	for {
		frame, more := frames.Next()
		if seenPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			seenPanic = true
		}
		if !more {
			return ""
		}
	}
}
