package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML writes markup for hand-built components. The first write error is kept
// and every later call becomes a no-op.
type HTML struct {
	w   io.Writer
	ctx context.Context
	err error
}

// NewHTML wraps w
func NewHTML(ctx context.Context, w io.Writer) *HTML {
	return &HTML{w: w, ctx: ctx}
}

// Raw writes trusted markup as is
func (h *HTML) Raw(s string) *HTML {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
	return h
}

// Text writes escaped text
func (h *HTML) Text(s string) *HTML {
	return h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped
func (h *HTML) Attr(name, value string) *HTML {
	return h.Raw(" " + name + `="`).Text(value).Raw(`"`)
}

// AttrIf writes a boolean attribute when cond holds
func (h *HTML) AttrIf(cond bool, name string) *HTML {
	if cond {
		h.Raw(" " + name)
	}
	return h
}

// Component renders a child component in place
func (h *HTML) Component(c templ.Component) *HTML {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
	return h
}

// Err returns the first write error
func (h *HTML) Err() error {
	return h.err
}

// Render builds a component from a write function
func Render(fn func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(ctx, w)
		fn(h)
		return h.Err()
	})
}
