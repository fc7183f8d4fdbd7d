package jobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"recsweep/internal/action"
	"recsweep/internal/expr"
)

// ErrInvalidDefinition marks job definition files that cannot be used.
var ErrInvalidDefinition = errors.New("invalid job definition")

// Definition is one entry of a job definition file.
type Definition struct {
	ID                     string `json:"id" yaml:"id" toml:"id"`
	File                   string `json:"file" yaml:"file" toml:"file"`
	Sheet                  string `json:"sheet" yaml:"sheet" toml:"sheet"`
	Encoding               string `json:"encoding,omitempty" yaml:"encoding,omitempty" toml:"encoding,omitempty"`
	Title                  string `json:"title" yaml:"title" toml:"title"`
	RecordingsDir          string `json:"recordings_dir" yaml:"recordings_dir" toml:"recordings_dir"`
	SubtitleColumn         Column `json:"subtitle_column" yaml:"subtitle_column" toml:"subtitle_column"`
	ValidRowCondition      string `json:"valid_row_condition,omitempty" yaml:"valid_row_condition,omitempty" toml:"valid_row_condition,omitempty"`
	KnownSubtitleCondition string `json:"known_subtitle_condition,omitempty" yaml:"known_subtitle_condition,omitempty" toml:"known_subtitle_condition,omitempty"`
	Action                 string `json:"action,omitempty" yaml:"action,omitempty" toml:"action,omitempty"`
	MoveTo                 string `json:"move_to,omitempty" yaml:"move_to,omitempty" toml:"move_to,omitempty"`
}

// tomlFile wraps definitions because a TOML document must be a table.
type tomlFile struct {
	Jobs []Definition `toml:"jobs"`
}

// LoadDefinitions decodes and validates the definition file at path. The
// format follows the extension: .json, .yaml/.yml, or .toml.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job definitions: %w", err)
	}
	defs, err := decodeDefinitions(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, filepath.Base(path), err)
	}
	if err := validateDefinitions(defs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, filepath.Base(path), err)
	}
	return defs, nil
}

func decodeDefinitions(ext string, data []byte) ([]Definition, error) {
	var defs []Definition
	switch strings.ToLower(ext) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&defs); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&defs); err != nil {
			return nil, err
		}
	case ".toml":
		var file tomlFile
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return nil, err
		}
		defs = file.Jobs
	default:
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}
	return defs, nil
}

func validateDefinitions(defs []Definition) error {
	seen := make(map[string]struct{}, len(defs))
	for i := range defs {
		def := &defs[i]
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			return fmt.Errorf("entry %d: id is required", i)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("entry %d: duplicate id %q", i, def.ID)
		}
		seen[def.ID] = struct{}{}
		if err := def.validate(); err != nil {
			return fmt.Errorf("job %q: %w", def.ID, err)
		}
	}
	return nil
}

func (d *Definition) validate() error {
	if strings.TrimSpace(d.File) == "" {
		return errors.New("file is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(d.RecordingsDir) == "" {
		return errors.New("recordings_dir is required")
	}
	if d.SubtitleColumn < 0 {
		return fmt.Errorf("subtitle_column must not be negative, got %d", d.SubtitleColumn)
	}
	if _, err := action.ParseAction(d.Action); err != nil {
		return err
	}
	if moveTo := strings.TrimSpace(d.MoveTo); strings.ContainsAny(moveTo, `/\`) || moveTo == "." || moveTo == ".." {
		return fmt.Errorf("move_to must be a plain directory name, got %q", d.MoveTo)
	}
	if _, err := expr.Compile(d.ValidRowCondition); err != nil {
		return fmt.Errorf("valid_row_condition: %w", err)
	}
	if _, err := expr.Compile(d.KnownSubtitleCondition); err != nil {
		return fmt.Errorf("known_subtitle_condition: %w", err)
	}
	return nil
}
