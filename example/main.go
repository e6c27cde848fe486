package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/memory"
	"github.com/meikuraledutech/flow/prompt"
	"github.com/meikuraledutech/flow/render"
)

func main() {
	ctx := context.Background()

	// Answers play the part of the user clicking through the modals.
	answers := prompt.NewScripted(
		prompt.Choose(flow.ActionRequest),
		prompt.Choose(flow.ActionWait), prompt.Wait(2, "09:30"),
		prompt.Choose(flow.ActionMessage),
		prompt.Cancel(),
		prompt.Confirm(true),
	)

	var store flow.Store = memory.New()
	b, err := flow.NewBuilder(store, flow.WithPrompter(answers))
	if err != nil {
		log.Fatalf("builder: %v", err)
	}

	// ── Append through the menus ──────────────────────────────────────
	for range 3 {
		node, ok, err := b.RequestAppend(ctx)
		if err != nil {
			log.Fatalf("append: %v", err)
		}
		fmt.Printf("appended %s %q (ok=%v), tail is now %s\n", node.ID, node.Label, ok, b.Tail())
	}

	// dismissed menu: nothing changes
	_, ok, err := b.RequestAppend(ctx)
	if err != nil {
		log.Fatalf("append: %v", err)
	}
	fmt.Printf("menu dismissed, appended=%v, nodes=%d\n", ok, len(b.State().Nodes))

	// ── Delete the wait step after confirming ─────────────────────────
	deleted, err := b.RequestDeleteNode(ctx, 4)
	if err != nil {
		log.Fatalf("delete: %v", err)
	}
	fmt.Printf("wait step deleted=%v\n", deleted)

	// start can never go
	if _, err := b.RequestDeleteNode(ctx, flow.StartID); err != nil {
		fmt.Println("start:", err)
	}

	// ── Reconnect the gap by hand and end the flow ────────────────────
	if _, err := b.Connect(3, 6); err != nil {
		log.Fatalf("connect: %v", err)
	}
	if _, err := b.Close(); err != nil {
		log.Fatalf("close: %v", err)
	}

	out, _ := json.MarshalIndent(b.State(), "", "  ")
	fmt.Println(string(out))
	fmt.Print(render.Mermaid(b.View()))
}
