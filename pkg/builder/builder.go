package builder

import (
	"github.com/Egham-7/llm-router/internal/config"
	"github.com/Egham-7/llm-router/internal/models"
)

// Builder assembles a RouterConfig in code. Build runs the same validation
// as loading from a file.
type Builder struct {
	cfg *models.RouterConfig
	log config.Logger
}

// New returns an empty Builder that logs through fiber
func New() *Builder {
	return &Builder{
		cfg: &models.RouterConfig{Policies: []models.Policy{}},
		log: config.DefaultLogger(),
	}
}

// Policy appends a policy. LLMs may be added inline or with PolicyBuilder.
func (b *Builder) Policy(name, url string, llms ...models.LLM) *Builder {
	b.cfg.Policies = append(b.cfg.Policies, models.Policy{
		Name: name,
		URL:  url,
		LLMs: append([]models.LLM{}, llms...),
	})
	return b
}

// AddPolicy appends the policy produced by pb
func (b *Builder) AddPolicy(pb *PolicyBuilder) *Builder {
	b.cfg.Policies = append(b.cfg.Policies, pb.Build())
	return b
}

// Logger sets the sink for validation warnings
func (b *Builder) Logger(log config.Logger) *Builder {
	if log != nil {
		b.log = log
	}
	return b
}

// Build validates and returns a copy of the assembled configuration
func (b *Builder) Build() (*models.RouterConfig, error) {
	cfg := b.cfg.Clone()
	if err := config.Validate(cfg, b.log); err != nil {
		return nil, err
	}
	return cfg, nil
}
