package analyzer

import (
	"context"
	"encoding/json"
)

// DefaultEndpoint is the analysis API served by a local backend.
const DefaultEndpoint = "http://localhost:8000/api/v1/analyze"

// StatusSuccess is the only envelope status that carries a renderable payload.
const StatusSuccess = "success"

type Request struct {
	RawText    string `json:"raw_text"`
	TargetLang string `json:"target_lang"`
}

// Envelope is the outer response object. Data is kept raw so that the
// second decode step happens only when Status says there is something to
// render.
type Envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type Transport interface {
	Analyze(ctx context.Context, req Request) (*Envelope, error)
}
