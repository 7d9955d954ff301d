package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// page buffers the markup of a view. The first error stops all writes.
type page struct {
	buf bytes.Buffer
	err error
}

// raw writes trusted markup.
func (p *page) raw(s string) {
	if p.err == nil {
		p.buf.WriteString(s)
	}
}

// text writes escaped character data.
func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes an escaped value inside a quoted attribute.
func (p *page) attr(s string) {
	p.raw(templ.EscapeString(s))
}

// child renders a nested component in place.
func (p *page) child(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, &p.buf)
}

func (p *page) flush(w io.Writer) error {
	if p.err != nil {
		return p.err
	}
	_, err := p.buf.WriteTo(w)
	return err
}
