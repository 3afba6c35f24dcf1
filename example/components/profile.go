package components

import (
	"context"
	"strings"

	"github.com/pthm/hxlive"
	"github.com/pthm/hxlive/lib/validate"
)

// Profile is an editable user profile.
//
//hxlive:schema profile
type Profile struct {
	Name    string          `live:"name"`
	Email   string          `live:"email"`
	Age     int             `live:"age"`
	Status  string          `live:"status"`
	Tags    []any           `live:"tags"`
	OnSaved hxlive.Callback `live:"onSaved"`
}

// ProfileSavedCallback is invoked after a profile passes validation.
const ProfileSavedCallback = "profile.saved"

var ProfileSchema = NewProfileSchema().
	OnSync("email", func(_ context.Context, c *hxlive.Component, v any) error {
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := validate.Validate(map[string]any{"email": s}, map[string][]validate.Rule{
			"email": {validate.Email()},
		})
		return err
	}).
	Rules("name", validate.Required(), validate.MinLen(2), validate.MaxLen(64)).
	Rules("email", validate.Required(), validate.Email()).
	Rules("age", validate.Numeric(), validate.Min(0), validate.Max(150)).
	OnMount(mountProfile).
	Action("save", saveProfile).
	Action("addTag", addTag).
	Render(profileView)

func mountProfile(_ context.Context, c *hxlive.Component, params map[string]any) error {
	p := Profile{
		Tags:    []any{},
		OnSaved: hxlive.Ref(ProfileSavedCallback),
	}
	if name, ok := params["name"].(string); ok {
		p.Name = name
	}
	if email, ok := params["email"].(string); ok {
		p.Email = email
	}
	for name, v := range p.LiveValues() {
		if err := c.Set(name, v); err != nil {
			return err
		}
	}
	c.Forms().Add("profile")
	return nil
}

func saveProfile(ctx context.Context, c *hxlive.Component, _ []any) error {
	data, err := c.Validated()
	if err != nil {
		return err
	}
	form := c.Forms().Add("profile")
	for k, v := range data {
		form.Values[k] = v
	}
	form.Refresh()
	return c.Call(ctx, "onSaved", data["name"])
}

// addTag appends args to the tag list. List changes are never reported as
// dirty; the rendered markup carries them to the client.
func addTag(_ context.Context, c *hxlive.Component, args []any) error {
	v, _ := c.Get("tags")
	tags, _ := v.([]any)
	next := append([]any(nil), tags...)
	for _, a := range args {
		if s, ok := a.(string); ok && strings.TrimSpace(s) != "" {
			next = append(next, strings.TrimSpace(s))
		}
	}
	return c.Set("tags", next)
}

// profileSaved is registered under ProfileSavedCallback.
func profileSaved(_ context.Context, c *hxlive.Component, args ...any) error {
	name := c.Display("name")
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			name = s
		}
	}
	return c.Set("status", "Saved "+name)
}
