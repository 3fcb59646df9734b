package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"checklist-cli/internal/tree"
)

type WriteOptions struct {
	IncludeSkipped bool
	Overwrite      bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteChecklist renders a checklist to <toDir>/<name>.md.
func WriteChecklist(name string, idx *tree.Index, checked tree.Checked, toDir string, opt WriteOptions) (WriteResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return WriteResult{}, errors.New("missing checklist name")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderChecklistMarkdown(name, idx, checked, RenderOptions{
		IncludeSkipped: opt.IncludeSkipped,
		Progress:       true,
	})
	if err != nil {
		return WriteResult{}, err
	}

	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(toDir, name+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
