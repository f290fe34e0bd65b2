package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bossgym/internal/action"
	"bossgym/internal/config"
	"bossgym/internal/episode"
	"bossgym/internal/logging"
	"bossgym/internal/observation"
)

var ErrUnknownCommand = errors.New("unknown command")

const (
	CmdReset = "reset"
	CmdStep  = "step"
	CmdClose = "close"
	CmdSpace = "space"
)

// Request is one inbound line. Action is a head array or a legacy integer.
// Vector asks for the flattened observation alongside the structured one.
type Request struct {
	Command string          `json:"command"`
	Action  json.RawMessage `json:"action,omitempty"`
	Vector  bool            `json:"vector,omitempty"`
}

// Response is one outbound line. Fields that do not apply are omitted.
type Response struct {
	Observation       *observation.Observation `json:"observation,omitempty"`
	ObservationVector []float64                `json:"observation_vector,omitempty"`
	Reward            *float64                 `json:"reward,omitempty"`
	Terminated        *bool                    `json:"terminated,omitempty"`
	Truncated         *bool                    `json:"truncated,omitempty"`
	Termination       string                   `json:"termination,omitempty"`
	ValidityMask      action.Mask              `json:"validity_mask,omitempty"`
	ValidActionMask   []bool                   `json:"valid_action_mask,omitempty"`
	Space             *episode.Space           `json:"space,omitempty"`
	Closed            bool                     `json:"closed,omitempty"`
	Error             string                   `json:"error,omitempty"`
}

// Env is what the adapter drives. *episode.Controller implements it.
type Env interface {
	Reset() (episode.StepResult, error)
	Step(action.Action) (episode.StepResult, error)
	Space() episode.Space
	Env() config.Env
}

type Handler struct {
	env Env
}

func NewHandler(env Env) *Handler { return &Handler{env: env} }

// Handle answers one request line. done is true once the caller asked to
// close. A panic anywhere below is turned into an error response.
func (h *Handler) Handle(line []byte) (resp Response, done bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("request panicked", fmt.Errorf("%v", r), logging.Fields{"line": truncate(line)})
			resp, done = errorResponse(fmt.Errorf("internal error: %v", r)), false
		}
	}()

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return errorResponse(fmt.Errorf("malformed request: %w", err)), false
	}
	switch strings.ToLower(strings.TrimSpace(req.Command)) {
	case CmdReset:
		res, err := h.env.Reset()
		if err != nil {
			return errorResponse(err), false
		}
		return h.result(res, req.Vector), false
	case CmdStep:
		a, err := action.Decode(h.env.Env(), req.Action)
		if err != nil {
			return errorResponse(fmt.Errorf("step: %w", err)), false
		}
		res, err := h.env.Step(a)
		if err != nil {
			return errorResponse(fmt.Errorf("step: %w", err)), false
		}
		return h.result(res, req.Vector), false
	case CmdSpace:
		sp := h.env.Space()
		return Response{Space: &sp}, false
	case CmdClose:
		return Response{Closed: true}, true
	}
	return errorResponse(fmt.Errorf("%w %q", ErrUnknownCommand, req.Command)), false
}

func (h *Handler) result(res episode.StepResult, vector bool) Response {
	obs := res.Observation
	r, term, trunc := res.Reward, res.Terminated, res.Truncated
	resp := Response{
		Observation:     &obs,
		Reward:          &r,
		Terminated:      &term,
		Truncated:       &trunc,
		Termination:     res.Termination.String(),
		ValidityMask:    res.Mask,
		ValidActionMask: action.LegacyMask(h.env.Env(), res.Mask),
	}
	if vector {
		resp.ObservationVector = observation.Vector(h.env.Env(), obs)
	}
	return resp
}

func errorResponse(err error) Response {
	return Response{Error: err.Error()}
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
