package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/comradekingu/po4a/pkg/config"
)

// envVarPrefix is the prefix for all po4a-man environment variables.
const envVarPrefix = "PO4AMAN_"

// LoadFromEnv applies environment variable overrides to the
// configuration. Variables are prefixed with PO4AMAN_
// (e.g., PO4AMAN_GROFF_CODE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v, ok := lookup("GROFF_CODE"); ok {
		cfg.GroffCode = v
	}
	if v, ok := lookup("CHARSET"); ok {
		cfg.Charset = v
	}
	if v, ok := lookup("FORMAT"); ok {
		cfg.Format = config.OutputFormat(v)
	}
	if v, ok := lookup("JOBS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sJOBS: %w", envVarPrefix, err)
		}
		cfg.Jobs = n
	}
	if v, ok := lookup("VERBOSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sVERBOSE: %w", envVarPrefix, err)
		}
		cfg.Verbose = b
	}

	lists := map[string]*[]string{
		"UNTRANSLATED":     &cfg.Untranslated,
		"NOARG":            &cfg.NoArg,
		"TRANSLATE_JOINED": &cfg.TranslateJoined,
		"TRANSLATE_EACH":   &cfg.TranslateEach,
		"INLINE":           &cfg.Inline,
		"NO_WRAP":          &cfg.NoWrap,
		"IGNORE":           &cfg.Ignore,
	}
	for name, field := range lists {
		if v, ok := lookup(name); ok {
			for _, item := range strings.Split(v, ",") {
				if item = strings.TrimSpace(item); item != "" {
					*field = append(*field, item)
				}
			}
		}
	}
	return nil
}

func lookup(name string) (string, bool) {
	return os.LookupEnv(envVarPrefix + name)
}
