package errors

import "fmt"

// Error annotates a failure with the operation and the tree-relative
// path it concerned, so callers can report "fetch boot/x86_64/linux
// failed" without string surgery at every call site.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("operation %q failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("operation %q on %q failed: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(op string, err error) error {
	return &Error{Op: op, Err: err}
}

func EPath(op, path string, err error) error {
	return &Error{Op: op, Path: path, Err: err}
}
