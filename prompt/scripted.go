package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/meikuraledutech/flow"
)

// ErrScriptExhausted is returned when a Scripted prompter runs out of answers.
var ErrScriptExhausted = errors.New("prompt: script exhausted")

// Answer is one scripted reply. Cancel dismisses the prompt.
type Answer struct {
	Action  flow.ActionKind
	Wait    flow.WaitParams
	Confirm bool
	Cancel  bool
}

func Choose(kind flow.ActionKind) Answer {
	return Answer{Action: kind}
}

func Wait(days int, time string) Answer {
	return Answer{Wait: flow.WaitParams{Days: days, Time: time}}
}

func Confirm(yes bool) Answer {
	return Answer{Confirm: yes}
}

func Cancel() Answer {
	return Answer{Cancel: true}
}

// Scripted replays a fixed sequence of answers, one per prompt shown.
// It records which prompts were opened.
type Scripted struct {
	answers []Answer
	calls   []string
}

var _ flow.Prompter = (*Scripted)(nil)

func NewScripted(answers ...Answer) *Scripted {
	return &Scripted{answers: answers}
}

// Calls returns the names of the prompts opened so far.
func (s *Scripted) Calls() []string {
	return s.calls
}

// Remaining returns the number of unused answers.
func (s *Scripted) Remaining() int {
	return len(s.answers)
}

func (s *Scripted) next(prompt string) (Answer, error) {
	s.calls = append(s.calls, prompt)
	if len(s.answers) == 0 {
		return Answer{}, fmt.Errorf("%w at %s", ErrScriptExhausted, prompt)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if a.Cancel {
		return Answer{}, flow.ErrCancelled
	}
	return a, nil
}

func (s *Scripted) ChooseAction(ctx context.Context) (flow.ActionKind, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	a, err := s.next("ChooseAction")
	if err != nil {
		return "", err
	}
	return a.Action, nil
}

func (s *Scripted) WaitParams(ctx context.Context) (flow.WaitParams, error) {
	if err := ctx.Err(); err != nil {
		return flow.WaitParams{}, err
	}
	a, err := s.next("WaitParams")
	if err != nil {
		return flow.WaitParams{}, err
	}
	if err := ValidateWait(a.Wait); err != nil {
		return flow.WaitParams{}, err
	}
	return a.Wait, nil
}

func (s *Scripted) ConfirmDelete(ctx context.Context, _ flow.Node) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	a, err := s.next("ConfirmDelete")
	if err != nil {
		return false, err
	}
	return a.Confirm, nil
}
