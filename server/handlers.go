package server

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/internal/tracing"
	"github.com/meikuraledutech/flow/prompt"
	"github.com/meikuraledutech/flow/render"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// apply runs one intent against a flow while holding the flow's lock. The
// intent is traced and counted by outcome.
func (s *Server) apply(c fiber.Ctx, op string, fn func(b *flow.Builder, span trace.Span) error) error {
	id := c.Params("id")
	_, span := s.tracer.Start(c.Context(), "flow."+op,
		trace.WithAttributes(attribute.String(tracing.FlowIDKey, id)))
	defer span.End()

	sess, err := s.session(id)
	if err == nil {
		sess.mu.Lock()
		err = fn(sess.builder, span)
		sess.mu.Unlock()
	}
	if err != nil {
		s.metrics.rejected(op)
		tracing.SetError(span, err, attribute.String(tracing.FlowIDKey, id))
		return err
	}

	s.metrics.committed(op)
	return nil
}

// read runs fn under the flow's lock without counting it as an intent.
func (s *Server) read(id string, fn func(b *flow.Builder)) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.builder)
	return nil
}

func (s *Server) bind(c fiber.Ctx, v any) error {
	if err := c.Bind().JSON(v); err != nil {
		return fmt.Errorf("%w: invalid body: %v", errBadRequest, err)
	}
	return s.validate.Struct(v)
}

func (s *Server) health(c fiber.Ctx) error {
	s.mu.RLock()
	n := len(s.sessions)
	s.mu.RUnlock()
	return c.JSON(fiber.Map{"status": "ok", "flows": n})
}

// ── Flows ─────────────────────────────────────────────────────────────

func (s *Server) createFlow(c fiber.Ctx) error {
	id, sess, err := s.create()
	if err != nil {
		return s.handleError(c, err)
	}
	s.metrics.committed("create")
	s.logger.Info("flow created", "flow", id)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(flowResponse{
		ID:    id,
		State: sess.builder.State(),
		View:  sess.builder.View(),
	})
}

func (s *Server) listFlows(c fiber.Ctx) error {
	return c.JSON(listResponse{Flows: s.ids()})
}

func (s *Server) getFlow(c fiber.Ctx) error {
	id := c.Params("id")
	var resp flowResponse
	err := s.read(id, func(b *flow.Builder) {
		resp = flowResponse{ID: id, State: b.State(), View: b.View()}
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(resp)
}

func (s *Server) deleteFlow(c fiber.Ctx) error {
	id := c.Params("id")
	if err := s.remove(id); err != nil {
		return s.handleError(c, err)
	}
	s.metrics.committed("discard")
	s.logger.Info("flow discarded", "flow", id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getMermaid(c fiber.Ctx) error {
	var out string
	err := s.read(c.Params("id"), func(b *flow.Builder) {
		out = render.Mermaid(b.View())
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.SendString(out)
}

// ── Steps ─────────────────────────────────────────────────────────────

func (s *Server) appendAction(c fiber.Ctx) error {
	var req appendRequest
	if err := s.bind(c, &req); err != nil {
		return s.handleError(c, err)
	}

	var node flow.Node
	err := s.apply(c, "append", func(b *flow.Builder, span trace.Span) error {
		span.SetAttributes(attribute.String(tracing.ActionKey, string(req.Kind)))

		var err error
		if req.Kind == flow.ActionWait {
			p := flow.WaitParams{Days: req.Days, Time: req.Time}
			if err := prompt.ValidateWait(p); err != nil {
				return err
			}
			node, err = b.AppendWait(p)
		} else {
			node, err = b.AppendAction(req.Kind)
		}
		return err
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(node)
}

func (s *Server) closeFlow(c fiber.Ctx) error {
	var node flow.Node
	err := s.apply(c, "close", func(b *flow.Builder, _ trace.Span) error {
		var err error
		node, err = b.Close()
		return err
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(node)
}

// ── Nodes ─────────────────────────────────────────────────────────────

// deleteNode deletes a node once the client has confirmed, which it signals
// with confirm=true. The prompt itself belongs to the client.
func (s *Server) deleteNode(c fiber.Ctx) error {
	id, err := flow.ParseNodeID(c.Params("nodeId"))
	if err != nil {
		return s.handleError(c, fmt.Errorf("%w: node id %q", errBadRequest, c.Params("nodeId")))
	}

	err = s.apply(c, "delete_node", func(b *flow.Builder, span trace.Span) error {
		span.SetAttributes(attribute.String(tracing.NodeIDKey, id.String()))
		if c.Query("confirm") != "true" {
			return errConfirmationRequired
		}
		return b.DeleteNode(id)
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) reposition(c fiber.Ctx) error {
	var req positionsRequest
	if err := s.bind(c, &req); err != nil {
		return s.handleError(c, err)
	}

	err := s.apply(c, "reposition", func(b *flow.Builder, _ trace.Span) error {
		return b.Reposition(req.Moves...)
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Edges ─────────────────────────────────────────────────────────────

func (s *Server) connect(c fiber.Ctx) error {
	var req connectRequest
	if err := s.bind(c, &req); err != nil {
		return s.handleError(c, err)
	}

	var id flow.EdgeID
	err := s.apply(c, "connect", func(b *flow.Builder, span trace.Span) error {
		var err error
		id, err = b.Connect(req.Source, req.Target)
		span.SetAttributes(attribute.String(tracing.EdgeIDKey, string(flow.MakeEdgeID(req.Source, req.Target))))
		return err
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(edgeResponse{ID: id})
}

func (s *Server) deleteEdge(c fiber.Ctx) error {
	id := flow.EdgeID(c.Params("edgeId"))

	err := s.apply(c, "delete_edge", func(b *flow.Builder, span trace.Span) error {
		span.SetAttributes(attribute.String(tracing.EdgeIDKey, string(id)))
		return b.DeleteEdge(id)
	})
	if err != nil {
		return s.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
