package nroff

import (
	"strings"
)

// splitArgs tokenizes a macro argument string. Unquoted runs of blanks
// separate arguments; a double-quoted region is one argument; "" inside
// a quoted region is a literal quote (kept as \(dq); escaped spaces are
// replaced by the non-breaking-space sentinel before splitting so they
// survive inside a single argument.
func splitArgs(s, sentinel string, ref Ref) ([]string, error) {
	s = strings.ReplaceAll(s, `\ `, sentinel)

	var args []string
	var cur strings.Builder
	inQuote := false
	started := false

	flush := func() {
		args = append(args, cur.String())
		cur.Reset()
		started = false
	}

	for i := 0; i < len(s); {
		c := s[i]
		if inQuote {
			if c == '"' {
				if i+1 < len(s) && s[i+1] == '"' {
					cur.WriteString(`\(dq`)
					i += 2
					continue
				}
				inQuote = false
				i++
				continue
			}
			cur.WriteByte(c)
			i++
			continue
		}
		switch c {
		case ' ', '\t':
			if started {
				flush()
			}
			i++
		case '"':
			inQuote = true
			started = true
			i++
		case '\\':
			if i+1 >= len(s) {
				return nil, parseErrorf(ref, "escaped space at the end of macro arg")
			}
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			started = true
			i += 2
		default:
			cur.WriteByte(c)
			started = true
			i++
		}
	}
	if started || inQuote {
		flush()
	}
	return args, nil
}

// quoteArg re-emits one macro argument, quoting when it contains blanks
// or is empty. Non-breaking spaces are restored after the blank check
// so an escaped space alone does not force quoting.
func quoteArg(arg, sentinel string) string {
	needQuote := arg == "" || strings.ContainsAny(arg, " \t")
	arg = strings.ReplaceAll(arg, sentinel, `\ `)
	if needQuote {
		return `"` + strings.ReplaceAll(arg, `"`, `\(dq`) + `"`
	}
	return arg
}
