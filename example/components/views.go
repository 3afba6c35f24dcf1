package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxlive"
)

func counterView(_ context.Context, c *hxlive.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		open(ctx, &sb, "div", c.Attrs(), templ.Attributes{"class": "counter"})
		fmt.Fprintf(&sb, `<span class="count">%s</span>`, templ.EscapeString(counterLabel(c)))
		open(ctx, &sb, "input", c.SyncAttrs("step"))
		writeErrors(ctx, &sb)
		button(ctx, &sb, "-", hxlive.ActionAttrs("decrement"))
		button(ctx, &sb, "+", hxlive.ActionAttrs("increment"))
		button(ctx, &sb, "Reset", hxlive.ActionAttrs("reset"))
		sb.WriteString(`</div>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func profileView(_ context.Context, c *hxlive.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		root := templ.Attributes{"class": "profile"}
		if f := hxlive.FormsFromContext(ctx).Get("profile"); f != nil && f.Pending() {
			root["data-refresh"] = "true"
		}
		open(ctx, &sb, "form", c.Attrs(), root)
		for _, name := range []string{"name", "email", "age"} {
			open(ctx, &sb, "input", c.SyncAttrs(name))
		}
		if status := c.Display("status"); status != "" {
			fmt.Fprintf(&sb, `<p class="status">%s</p>`, templ.EscapeString(status))
		}
		sb.WriteString(`<ul class="tags">`)
		v, _ := c.Get("tags")
		tags, _ := v.([]any)
		for _, t := range tags {
			fmt.Fprintf(&sb, `<li>%s</li>`, templ.EscapeString(fmt.Sprint(t)))
		}
		sb.WriteString(`</ul>`)
		writeErrors(ctx, &sb)
		button(ctx, &sb, "Save", hxlive.ActionAttrs("save"))
		sb.WriteString(`</form>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// open writes a start tag carrying the merged attribute sets.
func open(ctx context.Context, sb *strings.Builder, tag string, sets ...templ.Attributes) {
	merged := templ.Attributes{}
	for _, set := range sets {
		for k, v := range set {
			merged[k] = v
		}
	}
	sb.WriteString("<" + tag)
	_ = hxlive.WriteAttrs(ctx, sb, merged)
	sb.WriteString(">")
}

func button(ctx context.Context, sb *strings.Builder, label string, attrs templ.Attributes) {
	open(ctx, sb, "button", attrs)
	sb.WriteString(templ.EscapeString(label) + "</button>")
}

func writeErrors(ctx context.Context, sb *strings.Builder) {
	errs := hxlive.ErrorsFromContext(ctx)
	for _, field := range errs.Fields() {
		fmt.Fprintf(sb, `<span class="error" data-field="%s">%s</span>`,
			templ.EscapeString(field), templ.EscapeString(strings.Join(errs.Get(field), ", ")))
	}
}
