package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/inbound"
	"github.com/nexdevs/sentinel/internal/heuristics"
	"github.com/nexdevs/sentinel/pkg/apierror"
)

// eventRequest is the JSON body of POST /api/v1/events. Client IP and user
// agent always come from request headers, never the body, so a reporter
// cannot spoof another origin.
type eventRequest struct {
	Type     model.EventType   `json:"type"`
	Username string            `json:"username,omitempty"`
	Severity model.Severity    `json:"severity,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// analyzeRequest is the JSON body of POST /api/v1/analyze.
type analyzeRequest struct {
	Text    string                     `json:"text"`
	Section *heuristics.SectionContext `json:"section,omitempty"`
}

// analyzeResponse bundles every heuristic result for one input.
type analyzeResponse struct {
	Emotion    heuristics.EmotionAnalysis      `json:"emotion"`
	Sentiment  heuristics.SentimentAnalysis    `json:"sentiment"`
	Intent     string                          `json:"intent"`
	Complexity string                          `json:"complexity"`
	Urgency    string                          `json:"urgency"`
	Filter     heuristics.AdvancedFilterResult `json:"filter"`
}

// Handler exposes the monitor and heuristics over HTTP.
type Handler struct {
	recorder inbound.EventRecorderPort
	selector *heuristics.Selector
}

// NewHandler creates a Handler over the given recorder and rotation selector.
func NewHandler(recorder inbound.EventRecorderPort, selector *heuristics.Selector) *Handler {
	return &Handler{recorder: recorder, selector: selector}
}

// HandleRecordEvent accepts a security event report, stamps it with the
// caller's network identity, and records it. Always 202 on a valid event:
// alerting happens out of band.
func (h *Handler) HandleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}
	if !req.Type.IsValid() {
		writeError(w, apierror.BadRequest("unknown event type"))
		return
	}
	severity := req.Severity
	if severity == "" {
		severity = model.SeverityMedium
	}

	info := ExtractClientInfo(r)
	event := h.recorder.RecordEvent(r.Context(), model.NewEvent{
		Type:      req.Type,
		Username:  req.Username,
		ClientIP:  info.ClientIP,
		UserAgent: info.UserAgent,
		Severity:  severity,
		Details:   req.Details,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"event_id": event.ID})
}

// HandleStats returns the aggregate view over the event buffer.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.recorder.Stats())
}

// HandleAnalyze runs the full heuristics bundle over the submitted text.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	resp := analyzeResponse{
		Emotion:    heuristics.DetectEmotionWithConfidence(req.Text),
		Sentiment:  heuristics.AnalyzeSentiment(req.Text),
		Intent:     heuristics.DetectIntent(req.Text),
		Complexity: heuristics.AnalyzeComplexity(req.Text),
		Urgency:    heuristics.DetectUrgency(req.Text),
		Filter:     heuristics.FilterContentAdvanced(req.Text, req.Section, h.selector),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HealthHandler returns an http.HandlerFunc for the /health endpoint.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func writeError(w http.ResponseWriter, apiErr *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	_ = json.NewEncoder(w).Encode(apiErr)
}
