package cli

import (
	"errors"

	"github.com/comradekingu/po4a/pkg/config"
	"github.com/comradekingu/po4a/pkg/nroff"
)

// Exit codes for po4a-man.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitParseError indicates a fatal diagnostic while parsing.
	ExitParseError = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitGenerated indicates the input is a generated document that
	// must be translated at its source.
	ExitGenerated = 254
)

// ExitCodeFromError maps an error to the process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if nroff.IsGenerated(err) {
		return ExitGenerated
	}
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		return ExitConfigError
	}
	var pe *nroff.ParseError
	if errors.As(err, &pe) {
		return ExitParseError
	}
	return ExitParseError
}
