package directory

// Op constants name the directory operations for error context.
const (
	OpDial   = "dial"
	OpBind   = "bind"
	OpSearch = "search"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "directory " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
