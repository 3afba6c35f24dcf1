package hxlive

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"github.com/pthm/hxlive/lib/validate"
)

// TestResult holds the outcome of rendering or dispatching a component in
// tests, with convenience methods for asserting on HTML, dirty properties
// and validation errors.
type TestResult struct {
	HTML    string
	Dirty   []string
	Updates map[string]any
	Errors  validate.Errors
	State   string
	Mounted bool
}

// TestRender renders a component's view without running a cycle.
//
// Use this for pure rendering tests where you set properties directly:
//
//	c := hxlive.NewInstance(profile.Schema, nil)
//	c.Set("name", "Alice")
//	result, err := hxlive.TestRender(c, nil)
//	if !result.HTMLContains("Alice") {
//	    t.Fatal("missing name")
//	}
func TestRender(c *Component, errs validate.Errors) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), c, errs)
}

// TestRenderWithContext renders a component with a custom context.
func TestRenderWithContext(ctx context.Context, c *Component, errs validate.Errors) (*TestResult, error) {
	var buf bytes.Buffer
	if err := c.View(errs).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{HTML: buf.String(), Errors: errs}, nil
}

// TestDispatch runs a full round-trip through the registry, including
// persistence, and returns testable output.
//
//	first, _ := hxlive.TestDispatch(reg, hxlive.Request{Component: "profile"})
//	next, _ := hxlive.TestDispatch(reg, hxlive.Request{
//	    Component: "profile",
//	    State:     first.State,
//	    Action:    "save",
//	})
func TestDispatch(reg *Registry, req Request) (*TestResult, error) {
	return TestDispatchWithContext(context.Background(), reg, req)
}

// TestDispatchWithContext runs TestDispatch with a custom context.
func TestDispatchWithContext(ctx context.Context, reg *Registry, req Request) (*TestResult, error) {
	resp, err := reg.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:    resp.HTML,
		Dirty:   resp.Dirty,
		Updates: resp.Updates,
		Errors:  resp.Errors,
		State:   resp.State,
		Mounted: resp.Mounted,
	}, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// IsDirty checks if a property was reported dirty.
func (r *TestResult) IsDirty(name string) bool {
	return slices.Contains(r.Dirty, name)
}

// HasError checks if a field has a validation error.
func (r *TestResult) HasError(field string) bool {
	return r.Errors.Has(field)
}

// IsValid checks that no validation errors were reported.
func (r *TestResult) IsValid() bool {
	return r.Errors.IsEmpty()
}
