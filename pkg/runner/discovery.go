package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Options controls discovery and scheduling.
type Options struct {
	// Paths are the files or directories to process. Empty means the
	// current directory.
	Paths []string

	// Ignore contains glob patterns (matched against the base name)
	// for files to skip.
	Ignore []string

	// Jobs bounds the worker pool; 0 means one worker per CPU.
	Jobs int
}

// manPagePattern matches classical man page file names: a numeric
// section suffix with an optional subsection letter, or .man.
var manPagePattern = regexp.MustCompile(`\.([1-9][a-z]*|man)$`)

// Discover expands opts.Paths into the sorted list of man page files.
// Files named explicitly are always taken; directories are walked and
// filtered by extension and the ignore patterns.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := map[string]bool{}
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if d.IsDir() {
				return nil
			}
			if !manPagePattern.MatchString(d.Name()) {
				return nil
			}
			if ignored(d.Name(), opts.Ignore) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func ignored(name string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := filepath.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}
