package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// DefaultServerModule is the external server's command-line
// entrypoint. It parses the forwarded arguments itself.
const DefaultServerModule = "vllm.entrypoints.openai.api_server"

// ExecEntrypoint replaces the current process image with the external
// server, the Go equivalent of handing the argument vector to another
// program's main. Run does not return on success.
type ExecEntrypoint struct {
	// Python is the interpreter to exec. Defaults to "python3".
	Python string
	// Module is the module run as the server's main. Defaults to
	// DefaultServerModule.
	Module string
	// Environ, when set, produces the child environment from the
	// current one. The serve command uses it to carry the
	// registration table across the exec boundary.
	Environ func(base []string) ([]string, error)
}

func (e *ExecEntrypoint) Run(_ context.Context, args []string) error {
	python := e.Python
	if python == "" {
		python = "python3"
	}
	module := e.Module
	if module == "" {
		module = DefaultServerModule
	}

	path, err := exec.LookPath(python)
	if err != nil {
		return fmt.Errorf("locate interpreter %q: %w", python, err)
	}

	env := os.Environ()
	if e.Environ != nil {
		env, err = e.Environ(env)
		if err != nil {
			return err
		}
	}

	argv := make([]string, 0, len(args)+3)
	argv = append(argv, python, "-m", module)
	argv = append(argv, args...)

	// Exec only returns on failure.
	if err := unix.Exec(path, argv, env); err != nil {
		return fmt.Errorf("exec %s -m %s: %w", python, module, err)
	}
	return nil
}
