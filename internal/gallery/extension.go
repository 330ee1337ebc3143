package gallery

import (
	"path/filepath"
	"strings"

	"github.com/nerdneilsfield/plot-gallery/pkgs/constants"
)

// ExtensionSet is a case-insensitive set of file extensions without the dot.
type ExtensionSet map[string]struct{}

func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[strings.ToLower(ext)]
	return ok
}

// SupportedExtensions holds the image types a gallery shows.
var SupportedExtensions = NewExtensionSet(constants.ImageExtensions...)

// Extension returns the lower-cased text after the last dot of the file
// name, or "" if the name has none.
func Extension(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// Accepts reports whether path belongs in a gallery.
func Accepts(path string) bool {
	return SupportedExtensions.Contains(Extension(path))
}
