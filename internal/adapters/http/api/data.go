package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// POST /data targets.
const (
	TargetEvaluations = "Evaluations"
	TargetSettings    = "Settings"
	TargetSnapshot    = "Snapshot"
)

// DataHandler handles the /data wire contract: GET returns the dashboard
// payload, POST routes writes by target.
type DataHandler struct {
	deps Dependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps Dependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

// postRequest mirrors the POST /data body.
type postRequest struct {
	Target  string            `json:"target"`
	ID      string            `json:"id,omitempty"`
	Updates map[string]string `json:"updates,omitempty"`
}

func (p postRequest) validate() error {
	switch p.Target {
	case TargetEvaluations:
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("%w: missing id", ErrBadRequest)
		}
		if len(p.Updates) == 0 {
			return fmt.Errorf("%w: missing updates", ErrBadRequest)
		}
	case TargetSettings:
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("%w: missing id", ErrBadRequest)
		}
	case TargetSnapshot:
		// id and updates are ignored for snapshots.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTarget, p.Target)
	}
	return nil
}

// HandleData handles GET and POST /data requests.
func (h *DataHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *DataHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	data, err := h.deps.Dashboard(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *DataHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch req.Target {
	case TargetEvaluations:
		if err := h.deps.UpdateEvaluation(r.Context(), req.ID, req.Updates); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, postResponse{Success: true})

	case TargetSettings:
		// The settings value travels in updates under the Value column, or
		// as the sole update value when callers send a single field.
		value, ok := req.Updates["Value"]
		if !ok {
			for _, v := range req.Updates {
				value = v
				break
			}
		}
		if err := h.deps.UpsertSetting(r.Context(), req.ID, value); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, postResponse{Success: true})

	case TargetSnapshot:
		result, err := h.deps.Snapshot(r.Context())
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, postResponse{
			Success:  true,
			Appended: &result.Appended,
			Failed:   &result.Failed,
		})
	}
}
