package codec

import (
	"errors"
	"fmt"
)

// Kind classifies why a decode failed. Every failure is fatal to the
// decode call that produced it.
type Kind uint8

const (
	KindUnknown Kind = iota
	OutOfBounds
	MalformedHeader
	UnsupportedFeature
	CorruptData
	ResourceExhausted
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "Kind(OutOfBounds)"
	case MalformedHeader:
		return "Kind(MalformedHeader)"
	case UnsupportedFeature:
		return "Kind(UnsupportedFeature)"
	case CorruptData:
		return "Kind(CorruptData)"
	case ResourceExhausted:
		return "Kind(ResourceExhausted)"
	}
	return "Kind(UNKNOWN)"
}

// Sentinels for use with errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrOutOfBounds        = errors.New("read out of bounds")
	ErrMalformedHeader    = errors.New("malformed header")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrCorruptData        = errors.New("corrupt data")
	ErrResourceExhausted  = errors.New("resource exhausted")
)

func (k Kind) sentinel() error {
	switch k {
	case OutOfBounds:
		return ErrOutOfBounds
	case MalformedHeader:
		return ErrMalformedHeader
	case UnsupportedFeature:
		return ErrUnsupportedFeature
	case CorruptData:
		return ErrCorruptData
	case ResourceExhausted:
		return ErrResourceExhausted
	}
	return nil
}

// Error is the error type returned by every decoder in this module.
type Error struct {
	Kind Kind
	// Op names the stage that failed, e.g. "gif: image descriptor".
	Op  string
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel()
	if msg == nil {
		msg = errors.New("decode failed")
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, msg)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// Errorf builds an *Error of the given kind with a formatted detail message.
func Errorf(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind and stage to err. A nil err stays nil, and an err that
// already carries a Kind keeps it.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}
