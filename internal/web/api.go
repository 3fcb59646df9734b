package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"checklist-cli/internal/mutate"
	"checklist-cli/internal/statusutil"
	"checklist-cli/internal/store"
	"checklist-cli/internal/tree"
)

var errMissingDir = errors.New("web: missing dir")

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeMutationError maps engine/store errors to HTTP statuses.
func (s *Server) writeMutationError(w http.ResponseWriter, err error) {
	var nf mutate.NotFoundError
	var na mutate.NotActionableError
	switch {
	case errors.As(err, &nf):
		if nf.Kind == "checklist" {
			writeError(w, http.StatusNotFound, "Checklist not found")
			return
		}
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &na):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "Invalid checklist name")
	default:
		s.log.Printf("error: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(r *http.Request, v any) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return io.EOF
	}
	return json.Unmarshal(b, v)
}

func (s *Server) handleListChecklists(w http.ResponseWriter, r *http.Request) {
	refs, err := s.st.ListChecklists()
	if err != nil {
		s.log.Printf("list checklists: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checklists": refs})
}

func (s *Server) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	root, err := s.st.LoadChecklist(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidName) {
			writeError(w, http.StatusNotFound, "Checklist not found")
			return
		}
		s.log.Printf("load checklist %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"checklist": root})
}

func (s *Server) handlePutChecklist(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var body struct {
		Checklist json.RawMessage `json:"checklist"`
	}
	if err := decodeBody(r, &body); err != nil || len(body.Checklist) == 0 || string(body.Checklist) == "null" {
		writeError(w, http.StatusBadRequest, "No checklist data provided")
		return
	}
	if _, err := s.st.SafePath(name); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid checklist name")
		return
	}
	root, err := tree.Parse(body.Checklist)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid checklist: "+err.Error())
		return
	}
	if _, ok := root.Group(); !ok {
		writeError(w, http.StatusBadRequest, "Invalid checklist: top level must be an object")
		return
	}
	if err := s.st.SaveChecklist(name, root); err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.bc.notify(strings.TrimSpace(name))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r, r.PathValue("name"))
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) snapshot(r *http.Request, name string) (statusutil.Snapshot, error) {
	c, err := mutate.Open(r.Context(), s.st, name)
	if err != nil {
		return statusutil.Snapshot{}, err
	}
	snap := statusutil.NewSnapshot(c.Name, c.Index, c.Checked)
	if sess, err := s.st.Session(c.Name); err == nil {
		snap.Cursor = sess.Cursor
	}
	return snap, nil
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var body struct {
		ID      string `json:"id"`
		Checked *bool  `json:"checked"`
	}
	if err := decodeBody(r, &body); err != nil || strings.TrimSpace(body.ID) == "" {
		writeError(w, http.StatusBadRequest, "Missing id")
		return
	}
	var res mutate.CheckResult
	var err error
	if body.Checked == nil {
		res, err = mutate.Toggle(r.Context(), s.st, name, body.ID)
	} else {
		res, err = mutate.SetChecked(r.Context(), s.st, name, body.ID, *body.Checked)
	}
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.bc.notify(strings.TrimSpace(name))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := mutate.Reset(r.Context(), s.st, name, s.cfg.Now()); err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.bc.notify(strings.TrimSpace(name))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleMove(forward bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok, err := mutate.Move(r.Context(), s.st, r.PathValue("name"), r.URL.Query().Get("from"), forward)
		if err != nil {
			s.writeMutationError(w, err)
			return
		}
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"id": nil, "from": res.From})
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	runs, err := s.st.Runs(r.Context(), r.PathValue("name"), limit)
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleLogTime(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ChecklistName string   `json:"checklist_name"`
		TimeSeconds   *float64 `json:"time_seconds"`
		IsRushed      bool     `json:"is_rushed"`
	}
	if err := decodeBody(r, &body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(body.ChecklistName) == "" || body.TimeSeconds == nil {
		writeError(w, http.StatusBadRequest, "Missing checklist_name or time_seconds")
		return
	}
	if *body.TimeSeconds < 0 {
		writeError(w, http.StatusBadRequest, "time_seconds must not be negative")
		return
	}

	run, err := mutate.LogRun(r.Context(), s.st, body.ChecklistName, int(*body.TimeSeconds), body.IsRushed, mutate.RunOpts{
		Slots:        s.cfg.Slots,
		RolloverHour: s.cfg.RolloverHour,
		Now:          s.cfg.Now(),
	})
	if err != nil {
		s.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Logged %s to %s column", run.Duration, run.Slot),
		"run":     run,
	})
}
