package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type style string

const (
	styleReset style = "\033[0m"
	styleRed   style = "\033[31m"
	styleCyan  style = "\033[36m"
	styleGray  style = "\033[90m"
	styleBold  style = "\033[1m"
)

var colorEnabled = true

// DisableColors turns off ANSI escapes in Format output.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI escapes back on.
func EnableColors() { colorEnabled = true }

func paint(s style, text string) string {
	if !colorEnabled {
		return text
	}
	return string(s) + text + string(styleReset)
}

// Format renders the error as a block of terminal output: a header,
// the offending config lines when a location is known, then detail,
// cause and hint.
func (e *Error) Format() string {
	var b strings.Builder
	b.WriteString("\n")

	label := "ERROR: "
	if e.Code != "" {
		label = "ERROR " + e.Code + ": "
	}
	b.WriteString(paint(styleRed+styleBold, label))
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	e.writeExcerpt(&b)

	if e.Detail != "" {
		fmt.Fprintf(&b, "  %s\n\n", e.Detail)
	}
	if cause := e.cause(); cause != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(styleGray, "Cause: "), cause)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(styleCyan, "Hint: "), e.Suggestion)
	}
	return b.String()
}

// cause is the wrapped error's text, or "" when there is none or the
// detail already says the same thing.
func (e *Error) cause() string {
	if e.Wrapped == nil {
		return ""
	}
	text := e.Wrapped.Error()
	if e.Detail != "" && strings.Contains(e.Detail, text) {
		return ""
	}
	return text
}

func (e *Error) writeExcerpt(b *strings.Builder) {
	if e.Location == nil {
		return
	}
	fmt.Fprintf(b, "  %s\n\n", paint(styleCyan, e.Location.String()))
	if len(e.Context) == 0 {
		return
	}

	first := max(e.Location.Line-contextRadius, 1)
	for i, text := range e.Context {
		n := first + i
		marker := "  "
		if n == e.Location.Line {
			marker = paint(styleRed, "→ ")
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", marker, n, paint(styleGray, " │ "), text)
		if n == e.Location.Line && e.Location.Column > 0 {
			pad := strings.Repeat(" ", e.Location.Column-1)
			fmt.Fprintf(b, "         %s%s%s\n", paint(styleGray, "│ "), pad, paint(styleRed, "^"))
		}
	}
	b.WriteString("\n")
}

// Fprint writes err to w. Errors that are not *Error are shown with
// the same header and no code.
func Fprint(w io.Writer, err error) {
	var e *Error
	if !stderrors.As(err, &e) {
		e = &Error{Message: err.Error()}
	}
	fmt.Fprint(w, e.Format())
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
