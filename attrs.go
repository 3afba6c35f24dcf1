package hxlive

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// Attribute names the client runtime looks for in rendered markup.
const (
	AttrComponent = "data-live-component"
	AttrAction    = "data-live-action"
	AttrArgs      = "data-live-args"
	AttrSync      = "data-live-sync"
)

// Attrs returns the attributes for the component's root element. The
// client uses them to find the instance a request belongs to.
//
//	<div { c.Attrs()... }>
func (c *Component) Attrs() templ.Attributes {
	return templ.Attributes{
		"id":          c.id,
		AttrComponent: c.schema.name,
	}
}

// ActionAttrs builds the attributes of an element that triggers action.
// Arguments are sent back as Request.Args; they must survive a JSON round
// trip.
//
//	<button { hxlive.ActionAttrs("addTag", "go")... }>
func ActionAttrs(action string, args ...any) templ.Attributes {
	attrs := templ.Attributes{AttrAction: action}
	if len(args) > 0 {
		data, err := json.Marshal(args)
		if err == nil {
			attrs[AttrArgs] = string(data)
		}
	}
	return attrs
}

// SyncAttrs builds the attributes of an input bound to property. Edits are
// sent back as Request.Syncs and are never reported dirty in that cycle.
func (c *Component) SyncAttrs(property string) templ.Attributes {
	return templ.Attributes{
		"name":   property,
		"value":  c.Display(property),
		AttrSync: property,
	}
}

// WriteAttrs writes attrs as HTML attributes in name order, each preceded by
// a space. Boolean true renders the bare name and false omits it; values
// templ cannot render as an attribute are skipped.
func WriteAttrs(ctx context.Context, w io.Writer, attrs templ.Attributes) error {
	return templ.RenderAttributes(ctx, w, attrs)
}
