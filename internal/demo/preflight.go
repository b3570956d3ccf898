// Package demo shells out to the tt-metal text demo for one-shot
// inference. Each run reloads the model; the first run also compiles
// kernels and can take minutes. The long-lived serving path is the
// launched vLLM server, not this package.
package demo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const demoScript = "models/tt_transformers/demo/simple_text_demo.py"

var (
	ErrLlamaDirUnset   = errors.New(`LLAMA_DIR is not set; run: export LLAMA_DIR="~/models/Llama-3.1-8B-Instruct/original"`)
	ErrPythonPathUnset = errors.New("PYTHONPATH is not set; run: export PYTHONPATH=~/tt-metal")
	ErrNotMetalTree    = errors.New("working directory is not a tt-metal checkout; run from ~/tt-metal")
)

// Preflight verifies the environment the demo depends on. Getenv and
// WorkDir are seams for tests; zero values fall back to the real
// process environment and current directory.
type Preflight struct {
	Getenv  func(string) string
	WorkDir string
}

func (p Preflight) getenv(key string) string {
	if p.Getenv != nil {
		return p.Getenv(key)
	}
	return os.Getenv(key)
}

// Check returns the first unmet precondition. Checks run in the order
// an operator would fix them.
func (p Preflight) Check() error {
	if p.getenv("LLAMA_DIR") == "" {
		return ErrLlamaDirUnset
	}
	if p.getenv("PYTHONPATH") == "" {
		return ErrPythonPathUnset
	}

	dir := p.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}
	if _, err := os.Stat(filepath.Join(dir, demoScript)); err != nil {
		return ErrNotMetalTree
	}
	return nil
}

// LlamaDir reports the configured model directory, for diagnostics.
func (p Preflight) LlamaDir() string {
	return p.getenv("LLAMA_DIR")
}
