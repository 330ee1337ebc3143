package gallery

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CatchAllPattern matches every entry of a directory.
const CatchAllPattern = "*"

// Lister returns the entries of a directory in listing order.
type Lister interface {
	List(dir string) ([]string, error)
}

// ListerFunc adapts a plain function to Lister.
type ListerFunc func(dir string) ([]string, error)

func (f ListerFunc) List(dir string) ([]string, error) {
	return f(dir)
}

// GlobLister lists every entry of a directory with filepath.Glob. Returned
// paths are the directory joined with the entry name, in the order Glob
// produces them.
type GlobLister struct{}

func (g GlobLister) List(dir string) ([]string, error) {
	if err := checkDir(dir); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(escapeGlob(dir), CatchAllPattern))
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Glob swallows read errors, so the directory is opened up front.
func checkDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return &DirectoryAccessError{Dir: dir, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &DirectoryAccessError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return &DirectoryAccessError{Dir: dir, Err: errNotDirectory}
	}
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return &DirectoryAccessError{Dir: dir, Err: err}
	}
	return nil
}

func escapeGlob(dir string) string {
	if runtime.GOOS == "windows" {
		return dir
	}
	replacer := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`)
	return replacer.Replace(dir)
}
