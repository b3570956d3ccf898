// Package launch implements the two-step startup sequence: submit the
// model registrations, then cede the process to the external inference
// server. There is no third step; on success the entrypoint owns the
// process for the rest of its lifetime.
package launch

import (
	"context"
	"fmt"
	"io"

	"github.com/jzhengTT/ttserve/internal/logger"
	"github.com/jzhengTT/ttserve/internal/registry"
)

// Entrypoint is the external server's top-level run function. The
// production implementation never returns on success; test
// implementations record what they were invoked with.
type Entrypoint interface {
	Run(ctx context.Context, args []string) error
}

// Launcher wires the registrar and the entrypoint together.
type Launcher struct {
	Registry   registry.Registry
	Entries    []registry.Entry
	Entrypoint Entrypoint

	// Stdout receives the one confirmation line after registration.
	Stdout io.Writer
	// Log overrides the context logger when set.
	Log logger.Logger
}

// Launch registers every entry in order, prints the confirmation
// notice, and invokes the entrypoint with args forwarded verbatim.
// Registration always completes before the entrypoint is attempted;
// any failure on either side propagates unrecovered.
func (l *Launcher) Launch(ctx context.Context, args []string) error {
	log := l.Log
	if log == nil {
		log = logger.FromContext(ctx)
	}

	if err := registry.RegisterAll(l.Registry, l.Entries); err != nil {
		return err
	}
	if l.Stdout != nil {
		fmt.Fprintf(l.Stdout, "Registered %d Tenstorrent models with vLLM\n", len(l.Entries))
	}
	log.Debug("handing off to server entrypoint", "args", args)
	return l.Entrypoint.Run(ctx, args)
}
