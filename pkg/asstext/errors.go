// errors.go defines parse diagnostics and error values.
package asstext

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTag       = errors.New("unknown override tag")
	ErrInvalidParameter = errors.New("invalid tag parameter")
	ErrInvalidValue     = errors.New("invalid tag value")
)

// Level is the severity of a diagnostic.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "info"
	}
}

// Diagnostic codes.
const (
	CodeUnrecognizedTag = "UNRECOGNIZED_TAG"
)

// Diagnostic is a problem found while parsing one event text.
type Diagnostic struct {
	Level    Level
	Code     string
	Message  string
	Position int    // byte offset in the event text
	Raw      string // offending source text
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] at %d: %s", d.Level, d.Code, d.Position, d.Message)
}

// TagParseError reports override block content that is not a valid tag.
// It is only produced in strict mode.
type TagParseError struct {
	Raw      string
	Position int
}

func (e *TagParseError) Error() string {
	return fmt.Sprintf("unrecognized override tag content %q at byte %d", e.Raw, e.Position)
}
