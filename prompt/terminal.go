package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meikuraledutech/flow"
)

const (
	defaultDays = 1
	defaultTime = "00:00"
)

// Terminal asks its questions on a line-oriented terminal. An empty answer
// or "q" closes the menu; end of input dismisses any prompt.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

var _ flow.Prompter = (*Terminal)(nil)

// NewTerminal creates a Terminal. Callers that read commands from the same
// input must share the reader.
func NewTerminal(in *bufio.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func menuLabel(k flow.ActionKind) string {
	if k == flow.ActionWait {
		return "Wait"
	}
	return flow.ActionLabel(k)
}

func (t *Terminal) ChooseAction(ctx context.Context) (flow.ActionKind, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprintln(t.out, "Add action:")
		for i, k := range flow.ActionKinds {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, menuLabel(k))
		}
		fmt.Fprint(t.out, "choice (q to close): ")

		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		if line == "" || line == "q" {
			return "", flow.ErrCancelled
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(flow.ActionKinds) {
			return flow.ActionKinds[n-1], nil
		}
		if k := flow.ActionKind(strings.ToLower(line)); k.Valid() {
			return k, nil
		}
		fmt.Fprintf(t.out, "unknown choice %q\n", line)
	}
}

// WaitParams asks for the day count and the time of day. Empty answers keep
// the defaults of one day at 00:00. Invalid submissions are rejected and the
// questions asked again.
func (t *Terminal) WaitParams(ctx context.Context) (flow.WaitParams, error) {
	for {
		if err := ctx.Err(); err != nil {
			return flow.WaitParams{}, err
		}

		p := flow.WaitParams{Days: defaultDays, Time: defaultTime}

		fmt.Fprintf(t.out, "Days [%d]: ", defaultDays)
		line, err := t.readLine()
		if err != nil {
			return flow.WaitParams{}, err
		}
		if line == "q" {
			return flow.WaitParams{}, flow.ErrCancelled
		}
		if line != "" {
			days, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(t.out, "days must be a number, got %q\n", line)
				continue
			}
			p.Days = days
		}

		fmt.Fprintf(t.out, "Time (HH:MM) [%s]: ", defaultTime)
		line, err = t.readLine()
		if err != nil {
			return flow.WaitParams{}, err
		}
		if line == "q" {
			return flow.WaitParams{}, flow.ErrCancelled
		}
		if line != "" {
			p.Time = line
		}

		if err := ValidateWait(p); err != nil {
			fmt.Fprintln(t.out, err)
			continue
		}
		return p, nil
	}
}

func (t *Terminal) ConfirmDelete(ctx context.Context, node flow.Node) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(t.out, "Are you sure you want to delete %q? [y/N]: ", node.Label)
	line, err := t.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readLine returns the next trimmed line. End of input maps to ErrCancelled.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", flow.ErrCancelled
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
