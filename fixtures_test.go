package hxlive

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxlive/lib/validate"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

var errTooOld = errors.New("too old")

// signupSchema is the fixture component used across the package tests.
func signupSchema() *Schema {
	return NewSchema("signup").
		Field("name", KindString).
		Field("email", KindString).
		Field("age", KindInt).
		Field("greeting", KindString).
		Field("tags", KindList).
		Field("onSaved", KindCallback).
		OnSync("age", func(_ context.Context, _ *Component, v any) error {
			if n, ok := validate.ToFloat(v); ok && n > 150 {
				return errTooOld
			}
			return nil
		}).
		OnSync("email", func(_ context.Context, _ *Component, v any) error {
			_, err := validate.Validate(map[string]any{"email": v}, map[string][]validate.Rule{
				"email": {validate.Email()},
			})
			return err
		}).
		Rules("name", validate.Required(), validate.MinLen(2)).
		Rules("email", validate.Required()).
		OnMount(func(_ context.Context, c *Component, params map[string]any) error {
			if name, ok := params["name"]; ok {
				return c.Set("name", name)
			}
			return nil
		}).
		Action("greet", func(_ context.Context, c *Component, _ []any) error {
			return c.Set("greeting", "Hello, "+c.Display("name"))
		}).
		Action("save", func(ctx context.Context, c *Component, _ []any) error {
			if _, err := c.Validated(); err != nil {
				return err
			}
			c.Forms().Add("signup").Refresh()
			return nil
		}).
		Action("tag", func(_ context.Context, c *Component, args []any) error {
			tags, _ := c.Get("tags")
			list, _ := tags.([]any)
			return c.Set("tags", append(append([]any(nil), list...), args...))
		}).
		Action("boom", func(context.Context, *Component, []any) error {
			return errors.New("boom")
		}).
		Render(signupView)
}

func signupView(ctx context.Context, c *Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<form class="signup">`)
		sb.WriteString(`<p class="greeting">` + templ.EscapeString(c.Display("greeting")) + `</p>`)
		sb.WriteString(`<input name="name" value="` + templ.EscapeString(c.Display("name")) + `">`)
		for _, field := range ErrorsFromContext(ctx).Fields() {
			sb.WriteString(`<span class="error" data-field="` + field + `">` +
				templ.EscapeString(ErrorsFromContext(ctx).First(field)) + `</span>`)
		}
		if f := FormsFromContext(ctx).Get("signup"); f != nil && f.Pending() {
			sb.WriteString(`<i class="refresh"></i>`)
		}
		sb.WriteString(`</form>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func newTestRegistry(opts ...Option) *Registry {
	reg := NewRegistry(testKey, opts...)
	reg.Add(signupSchema())
	return reg
}
