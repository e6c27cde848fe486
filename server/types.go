package server

import "github.com/meikuraledutech/flow"

type flowResponse struct {
	ID    string     `json:"id"`
	State flow.State `json:"state"`
	View  flow.View  `json:"view"`
}

type listResponse struct {
	Flows []string `json:"flows"`
}

// appendRequest carries an action kind, and for a wait its parameters.
type appendRequest struct {
	Kind flow.ActionKind `json:"kind" validate:"required,oneof=request message inmail profile follow post wait"`
	Days int             `json:"days"`
	Time string          `json:"time"`
}

type connectRequest struct {
	Source flow.NodeID `json:"source" validate:"required"`
	Target flow.NodeID `json:"target" validate:"required"`
}

type edgeResponse struct {
	ID flow.EdgeID `json:"id"`
}

type positionsRequest struct {
	Moves []flow.NodeMove `json:"moves" validate:"required,min=1"`
}
