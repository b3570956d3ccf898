package registry

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// EnvVar carries the registration table into the external server
// process. The Python-side bootstrap reads it before vLLM starts
// serving and replays each entry into vLLM's ModelRegistry.
const EnvVar = "TT_VLLM_MODEL_REGISTRY"

// EnvTable is the production Registry: registrations accumulate
// locally and are handed to the exec'd server through the process
// environment. It embeds a Table so the serve command can also print
// what it registered.
type EnvTable struct {
	*Table
}

func NewEnvTable() *EnvTable {
	return &EnvTable{Table: NewTable()}
}

// Environ appends the serialized registration table to base. base is
// not modified.
func (t *EnvTable) Environ(base []string) ([]string, error) {
	payload, err := json.Marshal(t.Entries())
	if err != nil {
		return nil, fmt.Errorf("encode model registry: %w", err)
	}
	env := make([]string, 0, len(base)+1)
	env = append(env, base...)
	env = append(env, EnvVar+"="+string(payload))
	return env, nil
}
