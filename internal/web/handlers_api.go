package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/registry"
)

const maxArgsBytes = 1 << 20

type toolsResponse struct {
	Name         string                `json:"name"`
	Version      string                `json:"version"`
	Description  string                `json:"description"`
	Capabilities []registry.Descriptor `json:"capabilities"`
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toolsResponse{
		Name:         s.reg.Name(),
		Version:      s.reg.Version(),
		Description:  s.reg.Description(),
		Capabilities: s.reg.Describe(),
	})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	args, err := io.ReadAll(io.LimitReader(r.Body, maxArgsBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, registry.ErrorResult("could not read request body", http.StatusBadRequest))
		return
	}

	ctx := r.Context()
	if s.opts.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.GenerateTimeout)
		defer cancel()
	}

	out, err := s.reg.Dispatch(ctx, name, args)
	if err != nil {
		var unknown *registry.UnknownCapabilityError
		if errors.As(err, &unknown) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":       unknown.Error(),
				"status":      http.StatusNotFound,
				"suggestions": unknown.Suggestions,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, registry.ErrorResult(err.Error(), http.StatusInternalServerError))
		return
	}

	writeJSON(w, resultStatus(out), out)
}

// resultStatus mirrors the status of an error projection onto the response.
func resultStatus(out any) int {
	m, ok := out.(map[string]any)
	if !ok {
		return http.StatusOK
	}
	if _, isErr := m["error"]; !isErr {
		return http.StatusOK
	}
	if status, ok := m["status"].(int); ok && status >= 400 {
		return status
	}
	return http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}
