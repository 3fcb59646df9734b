package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

func newSSE(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(w, r)
}

// patchChecklist replaces #checklist with a fresh rendering and pushes the
// progress signals.
func (s *Server) patchChecklist(sse *datastar.ServerSentEventGenerator, v checklistView) {
	html, err := s.renderTemplate("rows", v)
	if err != nil {
		_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
		return
	}
	_ = sse.PatchElements(html, datastar.WithSelector("#checklist"), datastar.WithMode(datastar.ElementPatchModeOuter))
	_ = sse.MarshalAndPatchSignals(progressSignals(v))
}

func progressSignals(v checklistView) map[string]any {
	return map[string]any{
		"done":         v.Progress.Done,
		"total":        v.Progress.Total,
		"complete":     v.Progress.Complete,
		"time_seconds": v.Elapsed,
	}
}

// pageSignals is the initial datastar signal set of a checklist page.
func pageSignals(v checklistView) (string, error) {
	sig := progressSignals(v)
	sig["checklist_name"] = v.Name
	sig["is_rushed"] = false
	sig["message"] = ""
	b, err := json.Marshal(sig)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	v, err := s.checklistView(r, name)
	if err != nil {
		s.writePageError(w, err)
		return
	}

	h := s.bc.hubFor(name)
	ch, cancel := h.subscribe()
	defer cancel()

	sse := newSSE(w, r)
	_ = sse.MarshalAndPatchSignals(progressSignals(v))

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			v, err := s.checklistView(r, name)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			s.patchChecklist(sse, v)
		}
	}
}
