// Package merrors contains the error types this launcher core hands
// to its callers. Every type here has a Display string that can be
// shown to an end user as is. There is no separate internal error
// translation layer.
package merrors

import "fmt"

// CliError is a error that might get displayed to the user
type CliError struct {
	Err  string
	Code string
	Help string
}

func (e *CliError) Error() string {
	str := fmt.Sprintf("%s\n", e.Err)
	if e.Help != "" {
		str += "\n  Help: " + e.Help
	}
	return str
}

// NetworkError is a failed HTTP request. Status is 0 when the
// transport itself failed before a response arrived.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("got status %d from %s", e.Status, e.URL)
	}
	return fmt.Sprintf("could not reach %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NetworkError with status 404
func IsNotFound(err error) bool {
	if ne, ok := err.(*NetworkError); ok {
		return ne.Status == 404
	}
	return false
}

// NotFoundFallbackExhausted is returned when every candidate URL
// for an artifact answered 404.
type NotFoundFallbackExhausted struct {
	URLs []string
}

func (e *NotFoundFallbackExhausted) Error() string {
	return fmt.Sprintf("file not found on any of %d candidate urls (last: %s)",
		len(e.URLs), e.URLs[len(e.URLs)-1])
}

// SchemaError is a JSON document that did not have the expected shape
type SchemaError struct {
	Source string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected json in %s: %v", e.Source, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// PlatformUnsupported means there is no build of something (usually a
// java runtime) for the current OS/architecture combination.
type PlatformUnsupported struct {
	What string
	OS   string
	Arch string
}

func (e *PlatformUnsupported) Error() string {
	return fmt.Sprintf("no %s available for %s/%s", e.What, e.OS, e.Arch)
}

// ExtractionError is a corrupt archive, or an archive entry that would
// have been written outside its target directory.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SubprocessError is a nonzero exit from an external tool
// (javac, java or unpack200), with its captured output.
type SubprocessError struct {
	Command string
	Stdout  string
	Stderr  string
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("%s failed\n--- stdout ---\n%s\n--- stderr ---\n%s",
		e.Command, e.Stdout, e.Stderr)
}

// IoError is a filesystem failure, annotated with the offending path
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
