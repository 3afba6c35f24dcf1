// Command example replays a short client session against the example
// components and prints each response.
//
//	HXLIVE_KEY=dev-key HXLIVE_LOG_LEVEL=debug go run ./example
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pthm/hxlive"
	"github.com/pthm/hxlive/example/components"
)

func main() {
	cfg, err := hxlive.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	reg, err := hxlive.NewRegistryFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	components.Init(reg)

	if err := run(context.Background(), reg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, reg *hxlive.Registry) error {
	session := []hxlive.Request{
		{Component: "profile", Params: map[string]any{"name": "Alice"}},
		{Component: "profile", Syncs: []hxlive.SyncUpdate{{Name: "email", Value: "alice@example"}}, Action: "save"},
		{Component: "profile", Syncs: []hxlive.SyncUpdate{{Name: "email", Value: "alice@example.com"}}, Action: "save"},
		{Component: "profile", Action: "addTag", Args: []any{"go"}},
	}

	var state string
	for i, req := range session {
		req.State = state
		resp, err := reg.Dispatch(ctx, req)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		state = resp.State

		fmt.Printf("step %d: mounted=%v dirty=%v updates=%v errors=%v\n",
			i+1, resp.Mounted, resp.Dirty, resp.Updates, resp.Errors.Bag())
		fmt.Printf("  %s\n", resp.HTML)
	}
	return nil
}
