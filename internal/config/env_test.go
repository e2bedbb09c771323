package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSubstituteEnvVars(t *testing.T) {
	env := MapEnvironment{
		"KEY":   "secret123",
		"EMPTY": "",
		"NEST":  "${KEY}",
		"A:-b":  "odd",
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "defined variable", input: "api_key: ${KEY}", expected: "api_key: secret123"},
		{name: "undefined variable kept", input: "api_key: ${FOO}", expected: "api_key: ${FOO}"},
		{name: "defined but empty", input: "x${EMPTY}y", expected: "xy"},
		{name: "multiple occurrences", input: "${KEY}-${KEY}", expected: "secret123-secret123"},
		{name: "value is not rescanned", input: "${NEST}", expected: "${KEY}"},
		{name: "default syntax is part of the name", input: "${A:-b}", expected: "odd"},
		{name: "unmatched opener", input: "prefix ${KEY", expected: "prefix ${KEY"},
		{name: "empty name not matched", input: "${}", expected: "${}"},
		{name: "shortest span to next brace", input: "${X${KEY}}", expected: "${X${KEY}}"},
		{name: "no placeholders", input: "policies: []", expected: "policies: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SubstituteEnvVars(tt.input, env, NopLogger()))
		})
	}
}

func TestSubstituteEnvVarsLogsEachPlaceholder(t *testing.T) {
	log := &recordingLogger{}
	out := SubstituteEnvVars("${KEY} ${MISSING}", MapEnvironment{"KEY": "v"}, log)

	assert.Equal(t, "v ${MISSING}", out)
	assert.Equal(t, []string{"Substituted environment variable 'KEY' in config"}, log.messages("info"))
	assert.Equal(t, []string{"Environment variable 'MISSING' not found, keeping placeholder"}, log.messages("warn"))
}

func TestSubstituteEnvVarsProcessEnvironment(t *testing.T) {
	t.Setenv("ROUTER_TEST_KEY", "from-process")
	assert.Equal(t, "from-process", SubstituteEnvVars("${ROUTER_TEST_KEY}", nil, NopLogger()))
}

func TestSubstituteEnvVarsProperties(t *testing.T) {
	t.Run("text without placeholders is unchanged", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			text := rapid.StringMatching(`[a-zA-Z0-9 :\-\n}$"]*`).Draw(rt, "text")
			assert.Equal(rt, text, SubstituteEnvVars(text, MapEnvironment{"A": "x"}, NopLogger()))
		})
	})

	t.Run("substitution is deterministic", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			env := MapEnvironment(rapid.MapOf(
				rapid.StringMatching(`[A-Z_]{1,4}`),
				rapid.StringMatching(`[a-z0-9]{0,6}`),
			).Draw(rt, "env"))
			text := rapid.StringMatching(`([a-z ]{0,5}(\$\{[A-Z_]{1,4}\})?){0,6}`).Draw(rt, "text")

			first := SubstituteEnvVars(text, env, NopLogger())
			second := SubstituteEnvVars(text, env, NopLogger())
			assert.Equal(rt, first, second)
		})
	})

	t.Run("undefined variables are preserved", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			name := rapid.StringMatching(`[A-Z][A-Z0-9_]{0,10}`).Draw(rt, "name")
			placeholder := "${" + name + "}"
			assert.Equal(rt, placeholder, SubstituteEnvVars(placeholder, MapEnvironment{}, NopLogger()))
		})
	})
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadServerConfig(MapEnvironment{})
		assert.Equal(t, "config.yaml", cfg.ConfigPath)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "*", cfg.AllowedOrigins)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := LoadServerConfig(MapEnvironment{
			"ROUTER_CONFIG_PATH": "/etc/router/policies.yaml",
			"PORT":               "9000",
			"ENVIRONMENT":        "production",
			"LOG_LEVEL":          "DEBUG",
		})
		assert.Equal(t, "/etc/router/policies.yaml", cfg.ConfigPath)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.IsProduction())
	})
}

func TestLayeredEnvironment(t *testing.T) {
	env := LayeredEnvironment{
		MapEnvironment{"A": "first"},
		nil,
		MapEnvironment{"A": "second", "B": "fallback"},
	}

	v, ok := env.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = env.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, "fallback", v)

	_, ok = env.Lookup("C")
	assert.False(t, ok)
}
