package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/statusutil"
	"checklist-cli/internal/store"
	"checklist-cli/internal/tree"
)

type rowView struct {
	model.Row
	Text  string
	Value string
}

type checklistView struct {
	Name     string
	Path     string
	Rows     []rowView
	Progress tree.Summary
	Percent  int
	Cursor   string
	Elapsed  int
	Runs     []model.Run
}

type homeView struct {
	Checklists []model.ChecklistRef
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	refs, err := s.st.ListChecklists()
	if err != nil {
		s.log.Printf("list checklists: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeHTMLTemplate(w, "index", homeView{Checklists: refs})
}

func (s *Server) handleChecklistPage(w http.ResponseWriter, r *http.Request) {
	v, err := s.checklistView(r, r.PathValue("name"))
	if err != nil {
		s.writePageError(w, err)
		return
	}
	s.writeHTMLTemplate(w, "checklist", v)
}

func (s *Server) writePageError(w http.ResponseWriter, err error) {
	var nf mutate.NotFoundError
	switch {
	case errors.As(err, &nf), errors.Is(err, store.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, new(mutate.NotActionableError)):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Printf("error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) checklistView(r *http.Request, name string) (checklistView, error) {
	c, err := mutate.Open(r.Context(), s.st, name)
	if err != nil {
		return checklistView{}, err
	}
	v := checklistView{
		Name:     c.Name,
		Path:     "/c/" + url.PathEscape(c.Name),
		Progress: tree.Progress(c.Index.Root(), c.Checked),
	}
	if v.Progress.Total > 0 {
		v.Percent = v.Progress.Done * 100 / v.Progress.Total
	}
	nodes := c.Index.Nodes()
	for i, row := range statusutil.Rows(c.Index, c.Checked) {
		rv := rowView{Row: row, Text: strings.TrimSpace(row.Name)}
		if row.Label {
			rv.Text = strings.TrimSpace(strings.Trim(rv.Text, "|"))
		}
		if nodes[i].Value.Kind() == tree.KindScalar {
			rv.Value = scalarText(nodes[i].Value.ScalarValue())
		}
		v.Rows = append(v.Rows, rv)
	}
	if sess, err := s.st.Session(c.Name); err == nil {
		v.Cursor = sess.Cursor
	}
	if n, err := mutate.Elapsed(s.st, c.Name, s.cfg.Now()); err == nil {
		v.Elapsed = n
	}
	if runs, err := s.st.Runs(r.Context(), c.Name, 5); err == nil {
		v.Runs = runs
	}
	return v, nil
}

func scalarText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.RawMessage:
		return string(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// handleTogglePost serves both plain form posts (redirect) and datastar
// requests (patch the list in place).
func (s *Server) handleTogglePost(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(r.FormValue("id"))
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	if _, err := mutate.Toggle(r.Context(), s.st, name, id); err != nil {
		s.writePageError(w, err)
		return
	}
	s.bc.notify(strings.TrimSpace(name))
	s.finishPagePost(w, r, name)
}

func (s *Server) handleResetPost(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := mutate.Reset(r.Context(), s.st, name, s.cfg.Now()); err != nil {
		s.writePageError(w, err)
		return
	}
	s.bc.notify(strings.TrimSpace(name))
	s.finishPagePost(w, r, name)
}

func (s *Server) finishPagePost(w http.ResponseWriter, r *http.Request, name string) {
	if !isDatastarRequest(r) {
		redirectBack(w, r, "/c/"+url.PathEscape(strings.TrimSpace(name)))
		return
	}
	v, err := s.checklistView(r, name)
	if err != nil {
		s.writePageError(w, err)
		return
	}
	s.patchChecklist(newSSE(w, r), v)
}

func isDatastarRequest(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("Datastar-Request")), "true")
}
