package lifecycle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/recipe/recipe"
)

// Files written by a Run.
//
//	<BuildDir>/
//	  .run.json        # record of the last run: id, state, per-phase results
//	<PackageDir>/
//	  package.json     # package descriptor, written by the package phase
const (
	RecordFile     = ".run.json"
	DescriptorFile = "package.json"
)

// Record is the persisted form of a Result.
type Record struct {
	ID          string        `json:"id"`
	State       string        `json:"state"`
	FailedPhase Phase         `json:"failed_phase,omitempty"`
	Phases      []PhaseResult `json:"phases"`
	Warnings    string        `json:"warnings,omitempty"`
	Finished    time.Time     `json:"finished"`
}

func newRecord(res *Result) *Record {
	rec := &Record{
		ID:       res.ID.String(),
		State:    res.State.String(),
		Phases:   res.Phases,
		Finished: time.Now(),
	}
	if res.Failure != nil {
		rec.FailedPhase = res.Failure.Phase
	}
	if w := res.Warnings(); w != nil {
		rec.Warnings = w.Error()
	}
	return rec
}

// LoadRecord reads the record of the last run in buildDir.
func LoadRecord(buildDir string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(buildDir, RecordFile))
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func writeRecord(buildDir string, res *Result) error {
	return writeJSON(filepath.Join(buildDir, RecordFile), newRecord(res))
}

func writeDescriptor(packageDir string, d recipe.PackageDescriptor) error {
	return writeJSON(filepath.Join(packageDir, DescriptorFile), d)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
