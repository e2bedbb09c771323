package builder

import (
	"github.com/Egham-7/llm-router/internal/config"
)

// FromYAML seeds a Builder with the policies of a configuration file, after
// loading envFiles into the process environment.
func FromYAML(path string, envFiles []string) (*Builder, error) {
	if len(envFiles) > 0 {
		config.LoadEnvFiles(envFiles, nil)
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	b := New()
	b.cfg = cfg
	return b, nil
}
