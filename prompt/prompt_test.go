package prompt

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/meikuraledutech/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerminal(input string) (*Terminal, *strings.Builder) {
	out := &strings.Builder{}
	return NewTerminal(bufio.NewReader(strings.NewReader(input)), out), out
}

func TestValidateWait(t *testing.T) {
	assert.NoError(t, ValidateWait(flow.WaitParams{Days: 1, Time: "00:00"}))
	assert.NoError(t, ValidateWait(flow.WaitParams{Days: 14, Time: "23:59"}))

	err := ValidateWait(flow.WaitParams{Days: 0, Time: "09:30"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "days must be at least 1")

	err = ValidateWait(flow.WaitParams{Days: 2, Time: "half past nine"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "time must be formatted HH:MM")

	err = ValidateWait(flow.WaitParams{Days: 2})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "time is required")
}

func TestScripted_Sequence(t *testing.T) {
	ctx := context.Background()
	s := NewScripted(Choose(flow.ActionFollow), Wait(3, "10:15"), Confirm(true), Cancel())

	kind, err := s.ChooseAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, flow.ActionFollow, kind)

	p, err := s.WaitParams(ctx)
	require.NoError(t, err)
	assert.Equal(t, flow.WaitParams{Days: 3, Time: "10:15"}, p)

	ok, err := s.ConfirmDelete(ctx, flow.Node{})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.ChooseAction(ctx)
	assert.ErrorIs(t, err, flow.ErrCancelled)

	_, err = s.ChooseAction(ctx)
	assert.ErrorIs(t, err, ErrScriptExhausted)

	assert.Equal(t, []string{"ChooseAction", "WaitParams", "ConfirmDelete", "ChooseAction", "ChooseAction"}, s.Calls())
	assert.Zero(t, s.Remaining())
}

func TestScripted_RejectsInvalidWait(t *testing.T) {
	s := NewScripted(Wait(0, "09:00"))

	_, err := s.WaitParams(context.Background())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScripted_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScripted(Choose(flow.ActionPost))
	_, err := s.ChooseAction(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, s.Remaining())
}

func TestTerminal_ChooseAction(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  flow.ActionKind
	}{
		{"by number", "2\n", flow.ActionMessage},
		{"by name", "InMail\n", flow.ActionInMail},
		{"wait entry", "7\n", flow.ActionWait},
		{"retry after unknown", "42\nprofile\n", flow.ActionProfile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTerminal(tt.input)
			kind, err := term.ChooseAction(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestTerminal_ChooseActionCancel(t *testing.T) {
	for _, input := range []string{"q\n", "\n", ""} {
		term, _ := newTerminal(input)
		_, err := term.ChooseAction(context.Background())
		assert.ErrorIs(t, err, flow.ErrCancelled, "input %q", input)
	}
}

func TestTerminal_ChooseActionListsMenu(t *testing.T) {
	term, out := newTerminal("1\n")
	_, err := term.ChooseAction(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "1) Send Connection Request")
	assert.Contains(t, out.String(), "6) Like Post")
	assert.Contains(t, out.String(), "7) Wait")
}

func TestTerminal_WaitParams(t *testing.T) {
	term, _ := newTerminal("2\n09:30\n")
	p, err := term.WaitParams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, flow.WaitParams{Days: 2, Time: "09:30"}, p)
}

func TestTerminal_WaitParamsDefaults(t *testing.T) {
	term, _ := newTerminal("\n\n")
	p, err := term.WaitParams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, flow.WaitParams{Days: 1, Time: "00:00"}, p)
}

func TestTerminal_WaitParamsRejectsInvalid(t *testing.T) {
	term, out := newTerminal("abc\n0\n08:00\n3\n25:00\n3\n08:00\n")
	p, err := term.WaitParams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, flow.WaitParams{Days: 3, Time: "08:00"}, p)

	assert.Contains(t, out.String(), `days must be a number, got "abc"`)
	assert.Contains(t, out.String(), "days must be at least 1")
	assert.Contains(t, out.String(), "time must be formatted HH:MM")
}

func TestTerminal_WaitParamsCancel(t *testing.T) {
	term, _ := newTerminal("q\n")
	_, err := term.WaitParams(context.Background())
	assert.ErrorIs(t, err, flow.ErrCancelled)

	term, _ = newTerminal("2\nq\n")
	_, err = term.WaitParams(context.Background())
	assert.ErrorIs(t, err, flow.ErrCancelled)
}

func TestTerminal_ConfirmDelete(t *testing.T) {
	node := flow.Node{Label: "Send Message"}

	tests := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
	}
	for input, want := range tests {
		term, out := newTerminal(input)
		ok, err := term.ConfirmDelete(context.Background(), node)
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
		assert.Contains(t, out.String(), `delete "Send Message"`)
	}
}

func TestTerminal_ConfirmDeleteEOF(t *testing.T) {
	term, _ := newTerminal("")
	_, err := term.ConfirmDelete(context.Background(), flow.Node{})
	assert.ErrorIs(t, err, flow.ErrCancelled)
}
