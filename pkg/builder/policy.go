package builder

import "github.com/Egham-7/llm-router/internal/models"

// PolicyBuilder assembles a single policy for Builder.AddPolicy
type PolicyBuilder struct {
	name string
	url  string
	llms []models.LLM
}

// NewPolicyBuilder starts a policy with the given name
func NewPolicyBuilder(name string) *PolicyBuilder {
	return &PolicyBuilder{name: name}
}

// WithURL sets the routing service URL of the policy
func (pb *PolicyBuilder) WithURL(url string) *PolicyBuilder {
	pb.url = url
	return pb
}

// WithLLM appends an endpoint; apiKey may be a ${VAR} placeholder that is
// resolved at call time.
func (pb *PolicyBuilder) WithLLM(name, apiBase, apiKey, model string) *PolicyBuilder {
	pb.llms = append(pb.llms, models.LLM{
		Name:    name,
		APIBase: apiBase,
		APIKey:  apiKey,
		Model:   model,
	})
	return pb
}

// Build returns the policy with a copy of its LLMs
func (pb *PolicyBuilder) Build() models.Policy {
	return models.Policy{
		Name: pb.name,
		URL:  pb.url,
		LLMs: append([]models.LLM{}, pb.llms...),
	}
}
