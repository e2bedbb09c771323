package config

import (
	"fmt"

	"github.com/Egham-7/llm-router/internal/models"

	"gopkg.in/yaml.v3"
)

var (
	policyKeys = []string{"name", "url", "llms"}
	llmKeys    = []string{"name", "api_base", "api_key", "model"}
)

// Parse decodes already-substituted YAML into a RouterConfig. It checks the
// document shape (required keys present with the right node kinds) but
// leaves semantic checks to Validate.
func Parse(content []byte) (*models.RouterConfig, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	if err := checkDocument(&root); err != nil {
		return nil, err
	}

	var cfg models.RouterConfig
	if err := root.Decode(&cfg); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &cfg, nil
}

func checkDocument(root *yaml.Node) error {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return &ParseError{Msg: "empty document, expected a mapping with key 'policies'"}
	}

	doc := resolve(root.Content[0])
	if doc.Kind != yaml.MappingNode {
		return shapeError(doc, "expected a mapping at document root, found %s", describe(doc))
	}

	policies, err := requireKey(doc, "policies", "document")
	if err != nil {
		return err
	}
	if policies.Kind != yaml.SequenceNode {
		return shapeError(policies, "'policies' must be a sequence, found %s", describe(policies))
	}

	for i, item := range policies.Content {
		if err := checkPolicy(resolve(item), i); err != nil {
			return err
		}
	}
	return nil
}

func checkPolicy(node *yaml.Node, index int) error {
	where := fmt.Sprintf("policies[%d]", index)
	if node.Kind != yaml.MappingNode {
		return shapeError(node, "%s must be a mapping, found %s", where, describe(node))
	}

	for _, key := range policyKeys {
		value, err := requireKey(node, key, where)
		if err != nil {
			return err
		}
		if key == "llms" {
			if value.Kind != yaml.SequenceNode {
				return shapeError(value, "%s.llms must be a sequence, found %s", where, describe(value))
			}
			continue
		}
		if err := requireString(value, where+"."+key); err != nil {
			return err
		}
	}

	llms, _ := lookupKey(node, "llms")
	for i, item := range llms.Content {
		if err := checkLLM(resolve(item), fmt.Sprintf("%s.llms[%d]", where, i)); err != nil {
			return err
		}
	}
	return nil
}

func checkLLM(node *yaml.Node, where string) error {
	if node.Kind != yaml.MappingNode {
		return shapeError(node, "%s must be a mapping, found %s", where, describe(node))
	}

	for _, key := range llmKeys {
		value, err := requireKey(node, key, where)
		if err != nil {
			return err
		}
		if err := requireString(value, where+"."+key); err != nil {
			return err
		}
	}
	return nil
}

func requireKey(mapping *yaml.Node, key, where string) (*yaml.Node, error) {
	value, ok := lookupKey(mapping, key)
	if !ok {
		return nil, shapeError(mapping, "%s: missing field '%s'", where, key)
	}
	return value, nil
}

func requireString(node *yaml.Node, where string) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return shapeError(node, "%s must be a string, found %s", where, describe(node))
	}
	return nil
}

// lookupKey returns the value for key in a mapping node. Later duplicates
// win, matching how yaml.v3 decodes into a struct. Keys pulled in through a
// "<<" merge are found when the mapping does not set them itself.
func lookupKey(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	var found *yaml.Node
	var merges []*yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		switch mapping.Content[i].Value {
		case key:
			found = mapping.Content[i+1]
		case "<<":
			merges = append(merges, resolve(mapping.Content[i+1]))
		}
	}
	if found != nil {
		return resolve(found), true
	}

	for _, merge := range merges {
		sources := []*yaml.Node{merge}
		if merge.Kind == yaml.SequenceNode {
			sources = merge.Content
		}
		for _, source := range sources {
			source = resolve(source)
			if source.Kind != yaml.MappingNode {
				continue
			}
			if value, ok := lookupKey(source, key); ok {
				return value, true
			}
		}
	}
	return nil, false
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func describe(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return "null"
		}
		return "scalar " + node.Tag
	default:
		return "unknown node"
	}
}

func shapeError(node *yaml.Node, format string, args ...any) *ParseError {
	return &ParseError{
		Line:   node.Line,
		Column: node.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}
