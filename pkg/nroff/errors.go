package nroff

import (
	"errors"
	"fmt"
)

// ParseError is a fatal diagnostic tied to a source line. The parser
// surfaces the first ParseError per document and aborts; partial output
// is not guaranteed to be valid.
type ParseError struct {
	Ref Ref
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Ref, e.Msg)
}

func parseErrorf(ref Ref, format string, args ...any) error {
	return &ParseError{Ref: ref, Msg: fmt.Sprintf(format, args...)}
}

// GeneratedError reports that the input was produced by a documentation
// generator and must be translated at its source instead. Callers map
// it to exit code 254.
type GeneratedError struct {
	Ref    Ref
	Tool   string
	Advice string
}

func (e *GeneratedError) Error() string {
	return fmt.Sprintf("%s: this file was generated by %s: %s", e.Ref, e.Tool, e.Advice)
}

// IsGenerated reports whether err (or anything it wraps) is a
// GeneratedError.
func IsGenerated(err error) bool {
	var ge *GeneratedError
	return errors.As(err, &ge)
}
