package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/internal/log"
	"github.com/meikuraledutech/flow/memory"
	"github.com/meikuraledutech/flow/prompt"
	"github.com/meikuraledutech/flow/render"
	cli "github.com/urfave/cli/v3"
)

const help = `commands:
  a              add an action
  w              add a wait
  d <node>       delete a node
  x <edge>       delete a connection
  c <src> <dst>  connect two nodes
  e              end the flow
  p              print the flow
  q              quit
`

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build a flow interactively in the terminal",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return runSession(ctx, os.Stdin, os.Stdout)
		},
	}
}

// runSession reads commands from in until "q" or end of input. The flow is
// printed as a Mermaid chart after every change.
func runSession(ctx context.Context, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)

	b, err := flow.NewBuilder(memory.New(),
		flow.WithLogger(log.WithModule("build")),
		flow.WithPrompter(prompt.NewTerminal(r, out)),
		flow.WithSurface(flow.SurfaceFunc(func(v flow.View) {
			fmt.Fprint(out, render.Mermaid(v))
		})),
	)
	if err != nil {
		return err
	}
	fmt.Fprint(out, help)

	for {
		fmt.Fprint(out, "> ")
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		fields := strings.Fields(line)
		if len(fields) > 0 {
			quit, err := runCommand(ctx, b, out, fields)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				fmt.Fprintln(out, "error:", err)
			}
			if quit {
				return nil
			}
		}
		if eof {
			return nil
		}
	}
}

func runCommand(ctx context.Context, b *flow.Builder, out io.Writer, fields []string) (bool, error) {
	switch fields[0] {
	case "q":
		return true, nil

	case "a":
		_, ok, err := b.RequestAppend(ctx)
		if err == nil && !ok {
			fmt.Fprintln(out, "cancelled")
		}
		return false, err

	case "w":
		_, ok, err := b.RequestWait(ctx)
		if err == nil && !ok {
			fmt.Fprintln(out, "cancelled")
		}
		return false, err

	case "d":
		ids, err := nodeIDs(fields, 1)
		if err != nil {
			return false, err
		}
		_, err = b.RequestDeleteNode(ctx, ids[0])
		return false, err

	case "x":
		if len(fields) != 2 {
			return false, errors.New("usage: x <edge>")
		}
		return false, b.DeleteEdge(flow.EdgeID(fields[1]))

	case "c":
		ids, err := nodeIDs(fields, 2)
		if err != nil {
			return false, err
		}
		_, err = b.Connect(ids[0], ids[1])
		return false, err

	case "e":
		_, err := b.Close()
		return false, err

	case "p":
		fmt.Fprint(out, render.Mermaid(b.View()))
		return false, nil
	}

	fmt.Fprint(out, help)
	return false, nil
}

func nodeIDs(fields []string, n int) ([]flow.NodeID, error) {
	if len(fields) != n+1 {
		return nil, fmt.Errorf("%s expects %d node id(s)", fields[0], n)
	}
	ids := make([]flow.NodeID, 0, n)
	for _, f := range fields[1:] {
		id, err := flow.ParseNodeID(f)
		if err != nil {
			return nil, fmt.Errorf("bad node id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
