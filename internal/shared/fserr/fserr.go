// Package fserr defines the typed failures returned by filesystem and archive
// operations.
//
// Every failure carries a Kind, the step that failed (Op), and the path it
// failed on. Callers branch with errors.Is against the kind sentinels:
//
//	if errors.Is(err, fserr.ErrPathNotFound) {
//	    // show "folder is gone"
//	}
package fserr

import (
	"errors"
	"io/fs"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	// KindIO is a read, write, create or remove failure.
	KindIO
	// KindPathNotFound means the operation target does not exist.
	KindPathNotFound
	// KindNoParent means sibling resolution was asked for a root path.
	KindNoParent
	// KindArchiveFormat means the container is unreadable, corrupt or unsafe.
	KindArchiveFormat
)

// Kind sentinels for errors.Is.
var (
	ErrIO            = errors.New("io failure")
	ErrPathNotFound  = errors.New("path not found")
	ErrNoParent      = errors.New("no parent directory")
	ErrArchiveFormat = errors.New("archive format error")

	// ErrUnsafeEntry marks an archive entry whose path escapes the destination.
	ErrUnsafeEntry = errors.New("archive entry escapes destination")
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IoFailure"
	case KindPathNotFound:
		return "PathNotFound"
	case KindNoParent:
		return "NoParentDirectory"
	case KindArchiveFormat:
		return "ArchiveFormatError"
	default:
		return "Unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindPathNotFound:
		return ErrPathNotFound
	case KindNoParent:
		return ErrNoParent
	case KindArchiveFormat:
		return ErrArchiveFormat
	default:
		return nil
	}
}

// Error is a typed filesystem failure.
type Error struct {
	Kind Kind
	Op   string // failing step, e.g. "open archive", "write entry"
	Path string
	Err  error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
	} else {
		sb.WriteString(e.Kind.String())
	}
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// New builds an Error of the given kind.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// IO wraps an OS error. fs.ErrNotExist is promoted to KindPathNotFound.
func IO(op, path string, err error) *Error {
	if errors.Is(err, fs.ErrNotExist) {
		return New(KindPathNotFound, op, path, err)
	}
	return New(KindIO, op, path, err)
}

// NotFound builds a KindPathNotFound error.
func NotFound(op, path string) *Error {
	return New(KindPathNotFound, op, path, nil)
}

// NoParent builds a KindNoParent error.
func NoParent(op, path string) *Error {
	return New(KindNoParent, op, path, nil)
}

// Format builds a KindArchiveFormat error.
func Format(op, path string, err error) *Error {
	return New(KindArchiveFormat, op, path, err)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
