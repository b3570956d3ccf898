package launch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/jzhengTT/ttserve/internal/logger"
	"github.com/jzhengTT/ttserve/internal/registry"
)

type recordingEntrypoint struct {
	invoked bool
	args    []string
	// registeredAtRun captures the registry size at invocation time,
	// to check that registration completed first.
	registeredAtRun int
	table           *registry.Table
	err             error
}

func (e *recordingEntrypoint) Run(_ context.Context, args []string) error {
	e.invoked = true
	e.args = append([]string(nil), args...)
	if e.table != nil {
		e.registeredAtRun = e.table.Len()
	}
	return e.err
}

func TestLaunchForwardsArgsVerbatim(t *testing.T) {
	t.Parallel()

	tbl := registry.NewTable()
	ep := &recordingEntrypoint{table: tbl}
	var out bytes.Buffer
	l := &Launcher{
		Registry:   tbl,
		Entries:    registry.Builtin(),
		Entrypoint: ep,
		Stdout:     &out,
	}

	args := []string{"--model", "~/models/Llama-3.1-8B-Instruct", "--port", "8000", "--max-model-len", "65536"}
	if err := l.Launch(context.Background(), args); err != nil {
		t.Fatalf("Launch: %v", err)
	}

	if len(ep.args) != len(args) {
		t.Fatalf("argument count: got %d want %d", len(ep.args), len(args))
	}
	for i := range args {
		if ep.args[i] != args[i] {
			t.Fatalf("arg %d: got %q want %q", i, ep.args[i], args[i])
		}
	}
}

func TestLaunchRegistersBeforeEntrypoint(t *testing.T) {
	t.Parallel()

	tbl := registry.NewTable()
	ep := &recordingEntrypoint{table: tbl}
	var out bytes.Buffer
	l := &Launcher{
		Registry:   tbl,
		Entries:    registry.Builtin(),
		Entrypoint: ep,
		Stdout:     &out,
	}

	// No arguments: ordering must hold regardless of argv.
	if err := l.Launch(context.Background(), nil); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if !ep.invoked {
		t.Fatal("entrypoint was not invoked")
	}
	if ep.registeredAtRun != len(registry.Builtin()) {
		t.Fatalf("entrypoint ran with %d registrations, want %d", ep.registeredAtRun, len(registry.Builtin()))
	}
	want := fmt.Sprintf("Registered %d Tenstorrent models", len(registry.Builtin()))
	if !strings.Contains(out.String(), want) {
		t.Fatalf("missing confirmation line, got %q", out.String())
	}
}

func TestLaunchAbortsOnRegistrationFailure(t *testing.T) {
	t.Parallel()

	tbl := registry.NewTable()
	ep := &recordingEntrypoint{}
	var out bytes.Buffer
	l := &Launcher{
		Registry: tbl,
		Entries: []registry.Entry{
			{Name: "Bad", ClassPath: "not-a-class-path"},
		},
		Entrypoint: ep,
		Stdout:     &out,
	}

	err := l.Launch(context.Background(), []string{"--port", "8000"})
	if err == nil {
		t.Fatal("expected registration error")
	}
	if ep.invoked {
		t.Fatal("entrypoint must not run after registration failure")
	}
	if out.Len() != 0 {
		t.Fatalf("no confirmation expected on failure, got %q", out.String())
	}
}

func TestLaunchPropagatesEntrypointError(t *testing.T) {
	t.Parallel()

	boom := errors.New("server startup failed")
	tbl := registry.NewTable()
	l := &Launcher{
		Registry:   tbl,
		Entries:    registry.Builtin(),
		Entrypoint: &recordingEntrypoint{err: boom},
		Stdout:     &bytes.Buffer{},
	}

	if err := l.Launch(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected entrypoint error to propagate, got %v", err)
	}
}

func TestLaunchUsesContextLogger(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.JSON(&logBuf, slog.LevelDebug))

	tbl := registry.NewTable()
	l := &Launcher{
		Registry:   tbl,
		Entries:    registry.Builtin(),
		Entrypoint: &recordingEntrypoint{},
		Stdout:     &bytes.Buffer{},
	}
	if err := l.Launch(ctx, []string{"--port", "8000"}); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if !strings.Contains(logBuf.String(), "handing off to server entrypoint") {
		t.Fatalf("expected handoff log via context logger, got: %s", logBuf.String())
	}
}

func TestExecEntrypointMissingInterpreter(t *testing.T) {
	t.Parallel()

	ep := &ExecEntrypoint{Python: "definitely-not-an-interpreter-7f3a"}
	err := ep.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected lookup error for missing interpreter")
	}
	if !strings.Contains(err.Error(), "definitely-not-an-interpreter-7f3a") {
		t.Fatalf("error should name the interpreter: %v", err)
	}
}
