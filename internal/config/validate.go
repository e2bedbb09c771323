package config

import (
	"github.com/Egham-7/llm-router/internal/models"
)

// Validate walks policies and their LLMs in order and returns the first
// violation found. Within an LLM, api_base is checked before model before
// api_key. An api_key that is still a ${...} placeholder is allowed through
// with a warning; it fails later, when the key is actually used.
func Validate(cfg *models.RouterConfig, log Logger) error {
	return validate(cfg, log, nil)
}

func validate(cfg *models.RouterConfig, log Logger, metrics *Metrics) error {
	if cfg == nil {
		return nil
	}
	if log == nil {
		log = DefaultLogger()
	}

	for _, policy := range cfg.Policies {
		if policy.Name == "" {
			return &MissingPolicyFieldError{Policy: policy.Name, Field: "name"}
		}

		for _, llm := range policy.LLMs {
			if llm.APIBase == "" {
				return &MissingLLMFieldError{LLM: llm.Name, Field: "api_base"}
			}
			if llm.Model == "" {
				return &MissingLLMFieldError{LLM: llm.Name, Field: "model"}
			}
			if llm.APIKey == "" {
				return &MissingLLMFieldError{LLM: llm.Name, Field: "api_key"}
			}
			if isUnresolvedPlaceholder(llm.APIKey) {
				log.Warnf("API key for LLM '%s' contains unresolved environment variable placeholder: %s", llm.Name, llm.APIKey)
				metrics.observeUnresolvedAPIKey()
			}
		}
	}

	return nil
}
