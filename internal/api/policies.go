package api

import (
	"net/url"
	"strconv"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/utils"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

// PolicyHandler serves read-only views of a loaded routing configuration.
// Only the sanitized copy is kept, so API keys never leave the process.
type PolicyHandler struct {
	sanitized *models.RouterConfig
}

// NewPolicyHandler creates a handler over a redacted copy of cfg
func NewPolicyHandler(cfg *models.RouterConfig) *PolicyHandler {
	sanitized := cfg.Sanitized()
	if sanitized == nil {
		sanitized = &models.RouterConfig{}
	}
	return &PolicyHandler{sanitized: sanitized}
}

// ListPolicies returns every policy
func (h *PolicyHandler) ListPolicies(c *fiber.Ctx) error {
	return c.JSON(h.sanitized)
}

// GetPolicy returns the first policy whose name matches the :name parameter
func (h *PolicyHandler) GetPolicy(c *fiber.Ctx) error {
	name := param(c, "name")
	policy, ok := h.sanitized.GetPolicyByName(name)
	if !ok {
		return writeError(c, models.NewNotFoundError("policy", name))
	}
	return c.JSON(policy)
}

// GetPolicyByIndex returns the policy at the :index position
func (h *PolicyHandler) GetPolicyByIndex(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return writeError(c, models.NewValidationError("index must be an integer", err))
	}

	policy, ok := h.sanitized.GetPolicyByIndex(index)
	if !ok {
		return writeError(c, models.NewNotFoundError("policy index", strconv.Itoa(index)))
	}
	return c.JSON(policy)
}

// GetLLM returns an LLM by name within the named policy
func (h *PolicyHandler) GetLLM(c *fiber.Ctx) error {
	policyName := param(c, "name")
	policy, ok := h.sanitized.GetPolicyByName(policyName)
	if !ok {
		return writeError(c, models.NewNotFoundError("policy", policyName))
	}

	llmName := param(c, "llm")
	llm, ok := policy.GetLLMByName(llmName)
	if !ok {
		return writeError(c, models.NewNotFoundError("llm", llmName))
	}
	return c.JSON(llm)
}

// GetLLMByIndex returns the LLM at the :index position within the named policy
func (h *PolicyHandler) GetLLMByIndex(c *fiber.Ctx) error {
	policyName := param(c, "name")
	policy, ok := h.sanitized.GetPolicyByName(policyName)
	if !ok {
		return writeError(c, models.NewNotFoundError("policy", policyName))
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return writeError(c, models.NewValidationError("index must be an integer", err))
	}

	llm, ok := policy.GetLLMByIndex(index)
	if !ok {
		return writeError(c, models.NewNotFoundError("llm index", strconv.Itoa(index)))
	}
	return c.JSON(llm)
}

// ExportYAML renders the sanitized configuration in its on-disk YAML format
func (h *PolicyHandler) ExportYAML(c *fiber.Ctx) error {
	body, err := utils.MarshalYAML(h.sanitized)
	if err != nil {
		fiberlog.Errorf("Failed to encode configuration as YAML: %v", err)
		return writeError(c, models.NewInternalError("failed to render configuration", err))
	}

	c.Set(fiber.HeaderContentType, "application/yaml")
	return c.Send(body)
}

// param returns a path parameter with percent-encoding removed, so names
// with spaces can be queried.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func writeError(c *fiber.Ctx, err error) error {
	appErr := models.SanitizeError(err)
	return c.Status(appErr.GetStatusCode()).JSON(fiber.Map{
		"error": appErr,
	})
}
