// Package store persists the artifacts of one orchestrator run: a
// metadata.json snapshot of the InferenceResult and ExperimentConfig, the
// fired/derived rules as rules.txt, and a plain-text inference.log trace.
// An optional modernc.org/sqlite index lets a caller query past runs
// without re-parsing every metadata.json.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gitrdm/ruleforge/pkg/rulekit"
)

// RunMetadata is the json-serialized content of metadata.json.
type RunMetadata struct {
	RunID     string                   `json:"run_id"`
	Dataset   string                   `json:"dataset"`
	Method    rulekit.InferenceMethod  `json:"method"`
	Config    rulekit.ExperimentConfig `json:"config"`
	Result    *rulekit.InferenceResult `json:"result"`
	CreatedAt time.Time                `json:"created_at"`
}

// NewRunID generates a fresh v4 UUID run identifier. A UUID is used instead
// of a timestamp+counter scheme so directory names stay collision-resistant
// across concurrently running batch workers.
func NewRunID() string {
	return uuid.NewString()
}

// Writer persists run artifacts under a root directory, one subdirectory
// per run named "<run_id>_<dataset>_<method>".
type Writer struct {
	Root string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Root: dir}
}

// RunDir returns the artifact directory name for a given run.
func RunDir(runID, dataset string, method rulekit.InferenceMethod) string {
	return fmt.Sprintf("%s_%s_%s", runID, sanitize(dataset), string(method))
}

// Write persists metadata.json, rules.txt, and inference.log for one run,
// creating the run directory if needed. It returns the full path to the run
// directory.
func (w *Writer) Write(runID, dataset string, cfg rulekit.ExperimentConfig, result *rulekit.InferenceResult) (string, error) {
	dir := filepath.Join(w.Root, RunDir(runID, dataset, cfg.InferenceMethod))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: creating run directory: %w", err)
	}

	meta := RunMetadata{
		RunID:     runID,
		Dataset:   dataset,
		Method:    cfg.InferenceMethod,
		Config:    cfg,
		Result:    result,
		CreatedAt: time.Now(),
	}
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("store: marshaling metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), metaBytes, 0o644); err != nil {
		return "", fmt.Errorf("store: writing metadata.json: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "rules.txt"), []byte(rulesText(result)), 0o644); err != nil {
		return "", fmt.Errorf("store: writing rules.txt: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "inference.log"), []byte(traceText(result)), 0o644); err != nil {
		return "", fmt.Errorf("store: writing inference.log: %w", err)
	}

	return dir, nil
}

func rulesText(result *rulekit.InferenceResult) string {
	var b strings.Builder
	for _, r := range result.FiredRules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func traceText(result *rulekit.InferenceResult) string {
	var b strings.Builder
	for _, step := range result.Trace {
		fmt.Fprintf(&b, "iteration=%d conflict_size=%d", step.Iteration, step.ConflictSize)
		if step.SelectedRule != nil {
			fmt.Fprintf(&b, " selected_rule=%d", *step.SelectedRule)
		}
		if step.NewFact != nil {
			fmt.Fprintf(&b, " new_fact=%s", step.NewFact.String())
		}
		if step.Note != "" {
			fmt.Fprintf(&b, " note=%q", step.Note)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
