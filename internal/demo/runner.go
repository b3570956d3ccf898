package demo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/jzhengTT/ttserve/internal/logger"
)

const (
	defaultTimeout            = 5 * time.Minute
	defaultMaxSeqLen          = 1024
	defaultMaxGeneratedTokens = 128
)

// Result is one completed demo run. Output is the generated text
// extracted from demo stdout; failures are reported through the
// error return of Run, not here.
type Result struct {
	Output  string
	Elapsed time.Duration
}

// Runner executes the demo for a single prompt.
type Runner struct {
	Preflight Preflight
	// Timeout bounds one full run including model load and kernel
	// compilation. Defaults to 5 minutes.
	Timeout            time.Duration
	MaxSeqLen          int
	MaxGeneratedTokens int
	Log                logger.Logger
}

// runDemoCommand is a seam for tests.
var runDemoCommand = func(ctx context.Context, dir string, args []string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, "pytest", args...)
	cmd.Dir = dir
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Run stages the prompt, invokes the demo, and returns its output.
// The demo selects the batch-1 performance configuration in instruct
// mode, the same invocation an operator would type by hand.
func (r *Runner) Run(ctx context.Context, prompt string) (*Result, error) {
	if err := r.Preflight.Check(); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "ttserve-prompt-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	promptFile, err := WritePromptFile(tmpDir, prompt)
	if err != nil {
		return nil, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxSeqLen := r.MaxSeqLen
	if maxSeqLen <= 0 {
		maxSeqLen = defaultMaxSeqLen
	}
	maxTokens := r.MaxGeneratedTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxGeneratedTokens
	}

	args := []string{
		demoScript,
		"-k", "performance-batch-1",
		"--input_prompts", promptFile,
		"--max_seq_len", strconv.Itoa(maxSeqLen),
		"--max_generated_tokens", strconv.Itoa(maxTokens),
		"--instruct", "1",
		"-s",
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if r.Log != nil {
		r.Log.Debug("running demo", "prompt_file", promptFile, "timeout", timeout)
	}

	start := time.Now()
	stdout, stderr, err := runDemoCommand(runCtx, r.Preflight.WorkDir, args)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("demo timed out after %s", timeout)
		}
		if len(stderr) > 0 {
			return nil, fmt.Errorf("demo failed: %w: %s", err, bytes.TrimSpace(stderr))
		}
		return nil, fmt.Errorf("demo failed: %w", err)
	}

	return &Result{Output: ExtractGeneratedText(string(stdout)), Elapsed: elapsed}, nil
}
