package components

import (
	"context"
	"fmt"

	"github.com/pthm/hxlive"
	"github.com/pthm/hxlive/lib/validate"
)

//go:generate go run github.com/pthm/hxlive/cmd/hxlive generate .

// Counter is the initial state of a counter.
//
//hxlive:schema counter
type Counter struct {
	Count int    `live:"count"`
	Step  int    `live:"step"`
	Label string `live:"label"`
}

// CounterSchema counts up and down by a client-editable step.
var CounterSchema = NewCounterSchema().
	OnSync("step", syncStep).
	Rules("step", validate.Numeric(), validate.Min(1), validate.Max(100)).
	OnMount(mountCounter).
	Action("increment", func(_ context.Context, c *hxlive.Component, _ []any) error {
		return c.Set("count", intProp(c, "count")+intProp(c, "step"))
	}).
	Action("decrement", func(_ context.Context, c *hxlive.Component, _ []any) error {
		return c.Set("count", intProp(c, "count")-intProp(c, "step"))
	}).
	Action("reset", func(_ context.Context, c *hxlive.Component, _ []any) error {
		return c.Set("count", 0)
	}).
	Render(counterView)

func mountCounter(_ context.Context, c *hxlive.Component, params map[string]any) error {
	initial := Counter{Step: 1, Label: "Count"}
	if label, ok := params["label"].(string); ok && label != "" {
		initial.Label = label
	}
	if start, ok := validate.ToFloat(params["start"]); ok {
		initial.Count = int(start)
	}
	for name, v := range initial.LiveValues() {
		if err := c.Set(name, v); err != nil {
			return err
		}
	}
	return nil
}

// syncStep rejects steps the rules don't allow before they are stored.
func syncStep(_ context.Context, c *hxlive.Component, v any) error {
	rules, _ := c.Schema().RuleSet("step")
	_, err := validate.Validate(map[string]any{"step": v}, rules)
	return err
}

// intProp reads an integer property regardless of the numeric type it
// holds after a round-trip.
func intProp(c *hxlive.Component, name string) int64 {
	v, _ := c.Get(name)
	f, _ := validate.ToFloat(v)
	return int64(f)
}

func counterLabel(c *hxlive.Component) string {
	return fmt.Sprintf("%s: %d", c.Display("label"), intProp(c, "count"))
}
