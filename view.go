package hxlive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxlive/lib/logging"
	"github.com/pthm/hxlive/lib/validate"
)

type ctxKey int

const (
	errorsKey ctxKey = iota
	formsKey
	componentKey
)

// View returns the component's markup with errs and the component's forms
// available to the template through ErrorsFromContext and FormsFromContext.
// A nil errs renders with an empty error bag.
func (c *Component) View(errs validate.Errors) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if c.schema.render == nil {
			return fmt.Errorf("%w: %s", ErrNoRenderer, c.schema.name)
		}
		if errs == nil {
			errs = validate.Errors{}
		}
		ctx = context.WithValue(ctx, errorsKey, errs)
		ctx = context.WithValue(ctx, formsKey, c.forms)
		ctx = context.WithValue(ctx, componentKey, c)
		return c.schema.render(ctx, c).Render(ctx, w)
	})
}

// String renders the view without errors. Render failures are logged and
// yield "".
func (c *Component) String() string {
	var sb strings.Builder
	if err := c.View(nil).Render(context.Background(), &sb); err != nil {
		c.logger.Error("render failed", logging.Error(err))
		return ""
	}
	return sb.String()
}

// ErrorsFromContext returns the error bag of the view being rendered.
// It is never nil.
func ErrorsFromContext(ctx context.Context) validate.Errors {
	if errs, ok := ctx.Value(errorsKey).(validate.Errors); ok {
		return errs
	}
	return validate.Errors{}
}

// FormsFromContext returns the forms of the component being rendered.
func FormsFromContext(ctx context.Context) *Forms {
	if fs, ok := ctx.Value(formsKey).(*Forms); ok {
		return fs
	}
	return NewForms()
}

// ComponentFromContext returns the component being rendered, or nil.
func ComponentFromContext(ctx context.Context) *Component {
	c, _ := ctx.Value(componentKey).(*Component)
	return c
}
