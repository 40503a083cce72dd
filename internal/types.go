package internal

import "time"

// AnalysisRecord is one settled submission as kept in history.
type AnalysisRecord struct {
	ID         string        `json:"id"`
	RawText    string        `json:"raw_text"`
	TargetLang string        `json:"target_lang"`
	Outcome    string        `json:"outcome"`
	Output     string        `json:"output"`
	Error      string        `json:"error,omitempty"`
	Latency    time.Duration `json:"latency"`
	Timestamp  time.Time     `json:"timestamp"`
}
