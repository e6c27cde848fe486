package flow

import (
	"context"
	"errors"
)

// ErrCancelled is returned by a Prompter when the user dismisses a prompt.
var ErrCancelled = errors.New("flow: prompt cancelled")

// Prompter collects structured input from the user. Each method blocks until
// the user submits or dismisses the prompt.
//
// Implementations validate primitive input (for example WaitParams.Days >= 1)
// before returning; the builder does not re-check it.
type Prompter interface {
	ChooseAction(ctx context.Context) (ActionKind, error)
	WaitParams(ctx context.Context) (WaitParams, error)
	ConfirmDelete(ctx context.Context, node Node) (bool, error)
}
