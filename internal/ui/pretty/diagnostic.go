package pretty

import (
	"errors"
	"fmt"

	"github.com/comradekingu/po4a/pkg/nroff"
)

// FormatError renders a per-document failure with its source location
// when the error carries one.
func (s *Styles) FormatError(path string, err error) string {
	var pe *nroff.ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s %s %s",
			s.FilePath.Render(path),
			s.Location.Render(pe.Ref.String()),
			s.Error.Render(pe.Msg))
	}
	var ge *nroff.GeneratedError
	if errors.As(err, &ge) {
		return fmt.Sprintf("%s %s %s",
			s.FilePath.Render(path),
			s.Location.Render(ge.Ref.String()),
			s.Error.Render(fmt.Sprintf("generated by %s: %s", ge.Tool, ge.Advice)))
	}
	return fmt.Sprintf("%s %s",
		s.FilePath.Render(path),
		s.Error.Render(err.Error()))
}
