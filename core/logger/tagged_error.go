package logger

import (
	"errors"
	"fmt"
)

// TaggedError remembers which logger tag should report err once it reaches
// the command boundary.
type TaggedError struct {
	tag string
	err error
}

func (e *TaggedError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *TaggedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Tag returns the associated logger tag.
func (e *TaggedError) Tag() string {
	if e == nil {
		return ""
	}
	return e.tag
}

// WithTag wraps err with a logger tag. A nil err stays nil.
func WithTag(tag string, err error) error {
	if err == nil {
		return nil
	}
	return &TaggedError{tag: tag, err: err}
}

// Wrapf formats a message around err and tags the result.
func Wrapf(tag string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &TaggedError{tag: tag, err: fmt.Errorf(format+": %w", append(args, err)...)}
}

// ErrorTag returns the outermost logger tag in an error chain.
func ErrorTag(err error) string {
	var tagged *TaggedError
	if errors.As(err, &tagged) && tagged != nil {
		return tagged.Tag()
	}
	return ""
}
