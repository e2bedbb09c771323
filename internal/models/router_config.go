package models

import "strings"

// RedactedMarker replaces API keys in sanitized configurations
const RedactedMarker = "[REDACTED]"

// RouterConfig is the root of a routing configuration file
type RouterConfig struct {
	Policies []Policy `yaml:"policies" json:"policies"`
}

// Policy is a named routing target grouping one or more LLM endpoints
type Policy struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
	LLMs []LLM  `yaml:"llms" json:"llms"`
}

// LLM holds the connection details for a single backend endpoint
type LLM struct {
	Name    string `yaml:"name" json:"name"`
	APIBase string `yaml:"api_base" json:"api_base"`
	APIKey  string `yaml:"api_key" json:"api_key"`
	Model   string `yaml:"model" json:"model"`
}

// Clone returns a deep copy of the configuration
func (c *RouterConfig) Clone() *RouterConfig {
	if c == nil {
		return nil
	}

	clone := &RouterConfig{}
	if c.Policies != nil {
		clone.Policies = make([]Policy, len(c.Policies))
		for i := range c.Policies {
			clone.Policies[i] = c.Policies[i].Clone()
		}
	}
	return clone
}

// Clone returns a copy of the policy that shares no memory with the receiver
func (p Policy) Clone() Policy {
	clone := p
	if p.LLMs != nil {
		clone.LLMs = make([]LLM, len(p.LLMs))
		copy(clone.LLMs, p.LLMs)
	}
	return clone
}

// GetPolicyByName returns the first policy whose name matches after trimming
// surrounding whitespace from both sides.
func (c *RouterConfig) GetPolicyByName(name string) (Policy, bool) {
	if c == nil {
		return Policy{}, false
	}

	name = strings.TrimSpace(name)
	for i := range c.Policies {
		if strings.TrimSpace(c.Policies[i].Name) == name {
			return c.Policies[i].Clone(), true
		}
	}
	return Policy{}, false
}

// GetPolicyByIndex returns the policy at the given zero-based position
func (c *RouterConfig) GetPolicyByIndex(index int) (Policy, bool) {
	if c == nil || index < 0 || index >= len(c.Policies) {
		return Policy{}, false
	}
	return c.Policies[index].Clone(), true
}

// GetLLMByName looks up a policy by name and then an LLM inside it by name
func (c *RouterConfig) GetLLMByName(policyName, llmName string) (LLM, bool) {
	policy, ok := c.GetPolicyByName(policyName)
	if !ok {
		return LLM{}, false
	}
	return policy.GetLLMByName(llmName)
}

// Sanitized returns a deep copy with every API key replaced by RedactedMarker.
// The receiver is left untouched.
func (c *RouterConfig) Sanitized() *RouterConfig {
	sanitized := c.Clone()
	if sanitized == nil {
		return nil
	}

	for i := range sanitized.Policies {
		sanitized.Policies[i] = sanitized.Policies[i].Sanitized()
	}
	return sanitized
}

// Sanitized returns a copy of the policy with every API key redacted
func (p Policy) Sanitized() Policy {
	p = p.Clone()
	for i := range p.LLMs {
		p.LLMs[i] = p.LLMs[i].Sanitized()
	}
	return p
}

// GetLLMByName returns the first LLM whose name matches after trimming
// surrounding whitespace from both sides.
func (p Policy) GetLLMByName(name string) (LLM, bool) {
	name = strings.TrimSpace(name)
	for _, llm := range p.LLMs {
		if strings.TrimSpace(llm.Name) == name {
			return llm, true
		}
	}
	return LLM{}, false
}

// GetLLMByIndex returns the LLM at the given zero-based position
func (p Policy) GetLLMByIndex(index int) (LLM, bool) {
	if index < 0 || index >= len(p.LLMs) {
		return LLM{}, false
	}
	return p.LLMs[index], true
}

// GetLLMNameByIndex returns only the name of the LLM at the given position
func (p Policy) GetLLMNameByIndex(index int) (string, bool) {
	llm, ok := p.GetLLMByIndex(index)
	if !ok {
		return "", false
	}
	return llm.Name, true
}

// Sanitized returns a copy of the LLM with its API key redacted
func (l LLM) Sanitized() LLM {
	l.APIKey = RedactedMarker
	return l
}
