package registry

import (
	"errors"
	"strings"
	"testing"
)

type recordingRegistry struct {
	calls   []Entry
	failOn  string
	failErr error
}

func (r *recordingRegistry) Register(name, classPath string) error {
	if name == r.failOn {
		return r.failErr
	}
	r.calls = append(r.calls, Entry{Name: name, ClassPath: classPath})
	return nil
}

func TestRegisterAllOrderAndStrings(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Name: "TTLlamaForCausalLM", ClassPath: "models.tt_transformers.tt.generator_vllm:LlamaForCausalLM"},
		{Name: "TTQwen2ForCausalLM", ClassPath: "models.tt_transformers.tt.generator_vllm:Qwen2ForCausalLM"},
	}
	rec := &recordingRegistry{}
	if err := RegisterAll(rec, entries); err != nil {
		t.Fatalf("RegisterAll returned error: %v", err)
	}
	if len(rec.calls) != len(entries) {
		t.Fatalf("expected %d register calls, got %d", len(entries), len(rec.calls))
	}
	for i, want := range entries {
		if rec.calls[i] != want {
			t.Fatalf("call %d: got %+v want %+v", i, rec.calls[i], want)
		}
	}
}

func TestRegisterAllStopsOnFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("import failed")
	rec := &recordingRegistry{failOn: "B", failErr: boom}
	entries := []Entry{
		{Name: "A", ClassPath: "m.a:A"},
		{Name: "B", ClassPath: "m.b:B"},
		{Name: "C", ClassPath: "m.c:C"},
	}

	err := RegisterAll(rec, entries)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped registry error, got %v", err)
	}
	if len(rec.calls) != 1 || rec.calls[0].Name != "A" {
		t.Fatalf("expected registration to stop after A, got calls %+v", rec.calls)
	}
	if !strings.Contains(err.Error(), `"B"`) {
		t.Fatalf("error should name the failing entry: %v", err)
	}
}

func TestTableRegisterAndResolve(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	name := "TTLlamaForCausalLM"
	classPath := "models.tt_transformers.tt.generator_vllm:LlamaForCausalLM"
	if err := tbl.Register(name, classPath); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	got, ok := tbl.Resolve(name)
	if !ok {
		t.Fatalf("expected %q to resolve", name)
	}
	if got != classPath {
		t.Fatalf("resolved class path: got %q want %q", got, classPath)
	}
}

func TestTableRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	if err := tbl.Register("", "m:C"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := tbl.Register("X", "no-separator"); err == nil {
		t.Fatal("expected error for malformed class path")
	}
	if tbl.Len() != 0 {
		t.Fatalf("failed registrations must not be stored, table has %d entries", tbl.Len())
	}
}

func TestTableOverwriteKeepsOrder(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	for _, e := range []Entry{
		{Name: "A", ClassPath: "m.a:A"},
		{Name: "B", ClassPath: "m.b:B"},
		{Name: "A", ClassPath: "m.a2:A2"},
	} {
		if err := tbl.Register(e.Name, e.ClassPath); err != nil {
			t.Fatalf("Register(%q): %v", e.Name, err)
		}
	}

	entries := tbl.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "A" || entries[0].ClassPath != "m.a2:A2" {
		t.Fatalf("expected A overwritten in place, got %+v", entries[0])
	}
	if entries[1].Name != "B" {
		t.Fatalf("expected B second, got %+v", entries[1])
	}
}

func TestParseClassPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         string
		wantModule string
		wantClass  string
		wantErr    bool
	}{
		{
			name:       "valid nested module",
			in:         "models.tt_transformers.tt.generator_vllm:LlamaForCausalLM",
			wantModule: "models.tt_transformers.tt.generator_vllm",
			wantClass:  "LlamaForCausalLM",
		},
		{name: "missing separator", in: "models.generator_vllm.LlamaForCausalLM", wantErr: true},
		{name: "empty module", in: ":Class", wantErr: true},
		{name: "empty class", in: "models.x:", wantErr: true},
		{name: "double separator", in: "m:C:extra", wantErr: true},
		{name: "digit-leading segment", in: "models.1bad:Class", wantErr: true},
		{name: "bad class character", in: "models.ok:Cla-ss", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			module, class, err := ParseClassPath(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClassPath(%q): %v", tc.in, err)
			}
			if module != tc.wantModule || class != tc.wantClass {
				t.Fatalf("got (%q, %q) want (%q, %q)", module, class, tc.wantModule, tc.wantClass)
			}
		})
	}
}

func TestBuiltinEntriesAreValid(t *testing.T) {
	t.Parallel()

	tbl := NewTable()
	if err := RegisterAll(tbl, Builtin()); err != nil {
		t.Fatalf("builtin entries must register cleanly: %v", err)
	}

	got, ok := tbl.Resolve("TTLlamaForCausalLM")
	if !ok {
		t.Fatal("TTLlamaForCausalLM not registered")
	}
	want := "models.tt_transformers.tt.generator_vllm:LlamaForCausalLM"
	if got != want {
		t.Fatalf("TTLlamaForCausalLM class path: got %q want %q", got, want)
	}
}

func TestEnvTableEnviron(t *testing.T) {
	t.Parallel()

	env := NewEnvTable()
	if err := env.Register("TTLlamaForCausalLM", "models.tt_transformers.tt.generator_vllm:LlamaForCausalLM"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	base := []string{"PATH=/usr/bin"}
	got, err := env.Environ(base)
	if err != nil {
		t.Fatalf("Environ: %v", err)
	}
	if len(got) != 2 || got[0] != "PATH=/usr/bin" {
		t.Fatalf("base environment not preserved: %v", got)
	}
	if !strings.HasPrefix(got[1], EnvVar+"=") {
		t.Fatalf("expected %s entry, got %q", EnvVar, got[1])
	}
	if !strings.Contains(got[1], `"TTLlamaForCausalLM"`) ||
		!strings.Contains(got[1], "generator_vllm:LlamaForCausalLM") {
		t.Fatalf("payload missing registration: %q", got[1])
	}
}
