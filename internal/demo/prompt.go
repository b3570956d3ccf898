package demo

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

type promptEntry struct {
	Prompt string `json:"prompt"`
}

// WritePromptFile stages a prompt in the JSON shape the demo expects
// (a list of objects with a "prompt" key, matching
// models/tt_transformers/demo/sample_prompts/*.json) and returns the
// file path.
func WritePromptFile(dir, prompt string) (string, error) {
	data, err := json.MarshalIndent([]promptEntry{{Prompt: prompt}}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode prompt: %w", err)
	}
	path := filepath.Join(dir, "custom_prompt.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write prompt file: %w", err)
	}
	return path, nil
}
