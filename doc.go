// Package hxlive provides stateful, server-rendered components whose
// property values survive between HTTP round-trips, with dirty checking to
// tell the client which values the server changed.
//
// # Core Concepts
//
// A Schema defines a component type once, at startup: its ordered
// properties, sync handlers, validation rules, actions and renderer.
//
//	var Profile = hxlive.NewSchema("profile").
//	    Field("name", hxlive.KindString).
//	    Field("age", hxlive.KindInt).
//	    Field("tags", hxlive.KindList).
//	    Rules("name", validate.Required()).
//	    Action("birthday", birthday).
//	    Render(profileView)
//
// A Component is one instance of a schema. Its state travels to the client
// as a signed (or, with WithSensitive, encrypted) token and comes back with
// the next request.
//
// # Dirty Checking
//
// Each request is one cycle. BeginCycle records a CRC-32 checksum of every
// property that currently holds nil, a string or a number. After the syncs
// and the action ran, DirtyFields reports the properties whose checksum
// changed. Lists, maps and callbacks are never diffed.
//
// Values the client sent through SyncInput are exempt for the rest of the
// cycle: the client already shows them, so they are not reported back.
//
//	c.BeginCycle()
//	c.SyncInput(ctx, "age", 31)  // exempt
//	c.Set("name", "Bob")         // dirty
//	c.DirtyFields()              // ["name"]
//	c.EndCycle()
//
// Checksums are 32 bits, so a change can go unreported when two values
// collide. Numbers hash by their decimal form, so 30 and "30" compare equal.
//
// # Round-trips
//
// Registry.Dispatch runs the whole cycle for a decoded client request:
// restore or mount, sync, act, diff, render, persist. The surrounding web
// framework owns the transport and decides how Request and Response travel.
//
// # Callbacks
//
// Go funcs cannot be persisted. Properties holding callbacks use named
// callbacks (Func, Ref) registered in the registry's Callbacks table;
// PrepareForPersistence stores them by name and arguments.
package hxlive
