package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meikuraledutech/flow/internal/log"
)

var (
	ErrFlowClosed    = errors.New("flow: flow is closed")
	ErrUnknownAction = errors.New("flow: unknown action")
	ErrNoPrompter    = errors.New("flow: no prompter configured")
)

// Phase is the interaction state of a builder. It is view state only and
// never part of the graph.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActionMenuOpen
	PhaseWaitParamsOpen
	PhasePendingConfirmation
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActionMenuOpen:
		return "action-menu-open"
	case PhaseWaitParamsOpen:
		return "wait-params-open"
	case PhasePendingConfirmation:
		return "pending-confirmation"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Option configures a Builder.
type Option func(*Builder)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithPrompter sets the prompts used by the Request* methods.
func WithPrompter(p Prompter) Option {
	return func(b *Builder) {
		b.prompter = p
	}
}

// WithSurface sets the surface re-rendered after every committed mutation.
func WithSurface(s Surface) Option {
	return func(b *Builder) {
		b.surface = s
	}
}

// Builder turns user intents into store mutations and tracks the tail of
// the chain. A Builder is not safe for concurrent use.
type Builder struct {
	store    Store
	ids      *IDAllocator
	tail     NodeID
	closed   bool
	phase    Phase
	pending  NodeID
	prompter Prompter
	surface  Surface
	logger   *slog.Logger
}

// NewBuilder seeds the start node into an empty store and returns a builder
// whose tail is the start node.
func NewBuilder(store Store, opts ...Option) (*Builder, error) {
	b := &Builder{
		store:  store,
		ids:    NewIDAllocator(StartID + 1),
		tail:   StartID,
		logger: log.WithModule("builder"),
	}
	for _, opt := range opts {
		opt(b)
	}

	start := Node{
		ID:       StartID,
		Kind:     KindStart,
		Position: Position{X: 250, Y: 5},
	}
	start.Label = Label(start)
	if err := store.AddNode(start); err != nil {
		return nil, fmt.Errorf("flow: seed start node: %w", err)
	}

	b.render()
	return b, nil
}

// Tail returns the node the next appended step attaches to.
func (b *Builder) Tail() NodeID {
	return b.tail
}

// Closed reports whether an end node terminates the flow.
func (b *Builder) Closed() bool {
	return b.closed
}

func (b *Builder) Phase() Phase {
	return b.phase
}

// Pending returns the node awaiting delete confirmation, if any.
func (b *Builder) Pending() (NodeID, bool) {
	return b.pending, b.phase == PhasePendingConfirmation
}

// State returns the graph together with the tail and the next id.
func (b *Builder) State() State {
	return State{
		Graph:  b.store.Snapshot(),
		Tail:   b.tail,
		NextID: b.ids.Peek(),
		Closed: b.closed,
	}
}

// View returns the render form of the current graph. Edge delete callbacks
// are bound to DeleteEdge.
func (b *Builder) View() View {
	return NewView(b.store.Snapshot(), b.DeleteEdge)
}

// ── Append ───────────────────────────────────────────────────────────

// AppendAction appends an outreach step and a fresh continuation node after
// the tail. The continuation becomes the new tail.
func (b *Builder) AppendAction(kind ActionKind) (Node, error) {
	if !kind.Valid() || kind == ActionWait {
		return Node{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	return b.append(Node{Kind: KindAction, Action: kind})
}

// AppendWait appends a wait step and a fresh continuation node after the tail.
func (b *Builder) AppendWait(p WaitParams) (Node, error) {
	return b.append(Node{Kind: KindWait, Wait: &p})
}

func (b *Builder) append(node Node) (Node, error) {
	if b.closed {
		return Node{}, ErrFlowClosed
	}

	node.ID = b.ids.Next()
	node.Label = Label(node)
	node.Position = defaultPosition(node.ID)

	cont := Node{ID: b.ids.Next(), Kind: KindPlaceholder}
	cont.Label = Label(cont)
	cont.Position = defaultPosition(cont.ID)

	err := b.store.Update(func(tx Tx) error {
		if err := tx.AddNode(node); err != nil {
			return err
		}
		if err := tx.AddNode(cont); err != nil {
			return err
		}
		if _, err := tx.AddEdge(b.tail, node.ID); err != nil {
			return err
		}
		_, err := tx.AddEdge(node.ID, cont.ID)
		return err
	})
	if err != nil {
		return Node{}, fmt.Errorf("flow: append %s: %w", node.Kind, err)
	}

	b.logger.Debug("step appended",
		"node", node.ID, "kind", node.Kind, "label", node.Label,
		"previous_tail", b.tail, "tail", cont.ID)
	b.tail = cont.ID
	b.render()
	return node, nil
}

// Close appends an end node after the tail. The end node becomes the tail
// and further appends fail with ErrFlowClosed.
func (b *Builder) Close() (Node, error) {
	if b.closed {
		return Node{}, ErrFlowClosed
	}

	end := Node{ID: b.ids.Next(), Kind: KindEnd}
	end.Label = Label(end)
	end.Position = defaultPosition(end.ID)

	err := b.store.Update(func(tx Tx) error {
		if err := tx.AddNode(end); err != nil {
			return err
		}
		_, err := tx.AddEdge(b.tail, end.ID)
		return err
	})
	if err != nil {
		return Node{}, fmt.Errorf("flow: close: %w", err)
	}

	b.logger.Debug("flow closed", "node", end.ID, "previous_tail", b.tail)
	b.tail = end.ID
	b.closed = true
	b.render()
	return end, nil
}

// RequestAppend opens the action menu and, for a wait, the wait parameters
// prompt. It reports false without touching the graph if a prompt is
// dismissed.
func (b *Builder) RequestAppend(ctx context.Context) (Node, bool, error) {
	if b.prompter == nil {
		return Node{}, false, ErrNoPrompter
	}
	if b.closed {
		return Node{}, false, ErrFlowClosed
	}
	defer b.setPhase(PhaseIdle)

	b.setPhase(PhaseActionMenuOpen)
	kind, err := b.prompter.ChooseAction(ctx)
	if errors.Is(err, ErrCancelled) {
		b.logger.Debug("action menu dismissed")
		return Node{}, false, nil
	}
	if err != nil {
		return Node{}, false, fmt.Errorf("flow: action menu: %w", err)
	}

	if kind == ActionWait {
		return b.requestWait(ctx)
	}

	node, err := b.AppendAction(kind)
	if err != nil {
		return Node{}, false, err
	}
	return node, true, nil
}

// RequestWait opens the wait parameters prompt directly, as the
// continuation node's trigger does.
func (b *Builder) RequestWait(ctx context.Context) (Node, bool, error) {
	if b.prompter == nil {
		return Node{}, false, ErrNoPrompter
	}
	if b.closed {
		return Node{}, false, ErrFlowClosed
	}
	defer b.setPhase(PhaseIdle)

	return b.requestWait(ctx)
}

func (b *Builder) requestWait(ctx context.Context) (Node, bool, error) {
	b.setPhase(PhaseWaitParamsOpen)
	p, err := b.prompter.WaitParams(ctx)
	if errors.Is(err, ErrCancelled) {
		b.logger.Debug("wait prompt dismissed")
		return Node{}, false, nil
	}
	if err != nil {
		return Node{}, false, fmt.Errorf("flow: wait prompt: %w", err)
	}

	node, err := b.AppendWait(p)
	if err != nil {
		return Node{}, false, err
	}
	return node, true, nil
}

// ── Delete ───────────────────────────────────────────────────────────

// RequestDeleteNode asks for confirmation and deletes the node if the user
// agrees. Protected nodes are rejected before any prompt is shown.
func (b *Builder) RequestDeleteNode(ctx context.Context, id NodeID) (bool, error) {
	if b.prompter == nil {
		return false, ErrNoPrompter
	}
	node, err := b.deletable(id)
	if err != nil {
		return false, err
	}
	defer func() {
		b.pending = 0
		b.setPhase(PhaseIdle)
	}()

	b.pending = id
	b.setPhase(PhasePendingConfirmation)
	ok, err := b.prompter.ConfirmDelete(ctx, node)
	if errors.Is(err, ErrCancelled) || (err == nil && !ok) {
		b.logger.Debug("delete declined", "node", id)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("flow: confirm delete: %w", err)
	}

	if err := b.DeleteNode(id); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteNode removes a node and every edge touching it. Former neighbours
// are not reconnected. The start node, continuation nodes and the current
// tail cannot be deleted.
func (b *Builder) DeleteNode(id NodeID) error {
	if _, err := b.deletable(id); err != nil {
		return err
	}
	if err := b.store.RemoveNode(id); err != nil {
		return err
	}

	b.logger.Debug("node deleted", "node", id)
	b.render()
	return nil
}

func (b *Builder) deletable(id NodeID) (Node, error) {
	node, ok := b.store.Node(id)
	if !ok {
		return Node{}, &GraphError{Op: "RemoveNode", NodeID: id, Err: ErrUnknownNode}
	}
	if !node.Deletable() || id == b.tail {
		return Node{}, &GraphError{Op: "RemoveNode", NodeID: id, Err: ErrProtectedNode}
	}
	return node, nil
}

// DeleteEdge removes an edge immediately. Nodes are never removed.
func (b *Builder) DeleteEdge(id EdgeID) error {
	if err := b.store.RemoveEdge(id); err != nil {
		return err
	}

	b.logger.Debug("edge deleted", "edge", id)
	b.render()
	return nil
}

// ── Direct manipulation ──────────────────────────────────────────────

// Connect adds an edge drawn by the user on the canvas.
func (b *Builder) Connect(source, target NodeID) (EdgeID, error) {
	id, err := b.store.AddEdge(source, target)
	if err != nil {
		return "", err
	}

	b.logger.Debug("edge connected", "edge", id)
	b.render()
	return id, nil
}

// Reposition applies node drags reported by the surface.
func (b *Builder) Reposition(moves ...NodeMove) error {
	if len(moves) == 0 {
		return nil
	}
	if err := b.store.MoveNodes(moves...); err != nil {
		return err
	}
	b.render()
	return nil
}

func (b *Builder) setPhase(p Phase) {
	b.phase = p
}

func (b *Builder) render() {
	if b.surface != nil {
		b.surface.Render(b.View())
	}
}
