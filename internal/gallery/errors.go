package gallery

import (
	"errors"
	"fmt"
)

var errNotDirectory = errors.New("not a directory")

// DirectoryAccessError reports a gallery directory that is missing,
// unreadable or not a directory.
type DirectoryAccessError struct {
	Dir string
	Err error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("gallery directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error {
	return e.Err
}
