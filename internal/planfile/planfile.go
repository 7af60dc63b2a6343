// Package planfile imports and exports workouts as YAML, TOML or JSON files.
package planfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lowaak/hiit-timer/internal/workout"
)

var ErrUnsupportedFormat = errors.New("unsupported plan file format")

// File is the on-disk form of a workout
type File struct {
	Title       string              `json:"title" yaml:"title" toml:"title"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Stages      workout.WorkoutPlan `json:"stages" yaml:"stages" toml:"stage"`
}

// FromInfo converts a library workout for export
func FromInfo(info workout.WorkoutInfo) File {
	return File{Title: info.Title, Description: info.Description, Stages: info.Plan}
}

type format int

const (
	formatYAML format = iota
	formatTOML
	formatJSON
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	case ".json":
		return formatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q (use .yaml, .toml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
}

// Read loads and validates a plan file. A JSON file may also hold a bare
// stage array, the shape returned by the workout generator.
func Read(path string) (File, error) {
	f, err := formatOf(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading plan file: %w", err)
	}

	file, err := decode(f, data)
	if err != nil {
		return File{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if err := workout.Validate(file.Stages); err != nil {
		return File{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return file, nil
}

func decode(f format, data []byte) (File, error) {
	var file File
	switch f {
	case formatYAML:
		err := yaml.Unmarshal(data, &file)
		return file, err
	case formatTOML:
		_, err := toml.Decode(string(data), &file)
		return file, err
	default:
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			err := json.Unmarshal(trimmed, &file.Stages)
			return file, err
		}
		err := json.Unmarshal(data, &file)
		return file, err
	}
}

// Write stores file at path in the format implied by its extension
func Write(path string, file File) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(file)
		if err == nil {
			err = enc.Close()
		}
	case formatTOML:
		err = toml.NewEncoder(&buf).Encode(file)
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(file)
	}
	if err != nil {
		return fmt.Errorf("encoding plan file: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}
