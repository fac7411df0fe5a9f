package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comradekingu/po4a/pkg/config"
	"github.com/comradekingu/po4a/pkg/nroff"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generated document", &nroff.GeneratedError{Tool: "Pod::Man"}, ExitGenerated},
		{"wrapped generated document", fmt.Errorf("doc: %w", &nroff.GeneratedError{Tool: "docbook2man"}), ExitGenerated},
		{"parse error", &nroff.ParseError{Msg: "unknown macro"}, ExitParseError},
		{"config error", &config.ValidationError{Field: "groff_code"}, ExitConfigError},
		{"generic error", errors.New("boom"), ExitParseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}
