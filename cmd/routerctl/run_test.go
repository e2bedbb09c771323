package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Egham-7/llm-router/internal/config"
	"github.com/Egham-7/llm-router/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validConfig = `
policies:
  - name: p1
    url: http://x
    llms:
      - name: gpt
        api_base: http://api
        api_key: ${ROUTERCTL_TEST_KEY}
        model: gpt-4
      - name: llama
        api_base: http://nim
        api_key: literal-secret
        model: llama-3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, config.NopLogger())
	return code, stdout.String(), stderr.String()
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", validConfig)
	bad := writeFile(t, dir, "bad.yaml", `
policies:
  - name: p1
    url: http://x
    llms:
      - name: gpt
        api_base: ""
        api_key: k
        model: gpt-4
`)
	missing := filepath.Join(dir, "missing.yaml")

	code, out, _ := runCommand(t, "check", good)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "ok   "+good+" (1 policies)")

	code, out, _ = runCommand(t, "check", good, bad, missing)
	assert.Equal(t, exitFail, code)
	assert.Contains(t, out, "ok   "+good)
	assert.Contains(t, out, "FAIL "+bad+" [missing_llm_field]: llm 'gpt' is missing required field 'api_base'")
	assert.Contains(t, out, "FAIL "+missing+" [io]")
}

func TestShowRedactsKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", validConfig)
	envFile := writeFile(t, dir, ".env", "ROUTERCTL_TEST_KEY=dotenv-secret\n")

	code, out, _ := runCommand(t, "show", "-env-file", envFile, path)
	require.Equal(t, exitOK, code)
	assert.NotContains(t, out, "dotenv-secret")
	assert.NotContains(t, out, "literal-secret")

	var cfg models.RouterConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	require.Len(t, cfg.Policies, 1)
	require.Len(t, cfg.Policies[0].LLMs, 2)
	assert.Equal(t, models.RedactedMarker, cfg.Policies[0].LLMs[0].APIKey)
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", validConfig)

	code, out, _ := runCommand(t, "get", path, " p1 ")
	require.Equal(t, exitOK, code)
	var policy models.Policy
	require.NoError(t, yaml.Unmarshal([]byte(out), &policy))
	assert.Equal(t, "http://x", policy.URL)
	assert.Len(t, policy.LLMs, 2)

	code, out, _ = runCommand(t, "get", path, "p1", "llama")
	require.Equal(t, exitOK, code)
	var llm models.LLM
	require.NoError(t, yaml.Unmarshal([]byte(out), &llm))
	assert.Equal(t, models.LLM{Name: "llama", APIBase: "http://nim", APIKey: models.RedactedMarker, Model: "llama-3"}, llm)

	code, _, errOut := runCommand(t, "get", path, "nope")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, errOut, "policy 'nope' not found")

	code, _, errOut = runCommand(t, "get", path, "p1", "claude")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, errOut, "llm 'claude' not found")
}

func TestProcessEnvironmentWinsOverEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
policies:
  - name: ${ROUTERCTL_POLICY}
    url: http://x
    llms: []
`)
	envFile := writeFile(t, dir, ".env", "ROUTERCTL_POLICY=from-file\n")
	t.Setenv("ROUTERCTL_POLICY", "from-process")

	code, out, _ := runCommand(t, "get", "-env-file", envFile, path, "from-process")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "name: from-process")
}

func TestEnvFileUsedWhenProcessVariableUnset(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
policies:
  - name: ${ROUTERCTL_POLICY}
    url: http://x
    llms: []
`)
	first := writeFile(t, dir, "first.env", "ROUTERCTL_POLICY=from-first\n")
	second := writeFile(t, dir, "second.env", "ROUTERCTL_POLICY=from-second\n")
	t.Setenv("ROUTERCTL_POLICY", "")
	require.NoError(t, os.Unsetenv("ROUTERCTL_POLICY"))

	code, out, _ := runCommand(t, "get", "-env-file", first, "-env-file", second, path, "from-first")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "name: from-first")
}

func TestFlagsAfterArguments(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", validConfig)
	envFile := writeFile(t, dir, ".env", "ROUTERCTL_TEST_KEY=dotenv-secret\n")

	code, out, _ := runCommand(t, "check", path, "-q")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "ok   "+path+" (1 policies)")
	assert.NotContains(t, out, "-q")

	code, out, _ = runCommand(t, "get", path, "-env-file", envFile, "p1", "gpt")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "name: gpt")

	code, out, _ = runCommand(t, "check", "--", path, "-q")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, out, "ok   "+path)
	assert.Contains(t, out, "FAIL -q [io]")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"unknown command", []string{"lint", "x.yaml"}},
		{"check without files", []string{"check"}},
		{"show with two files", []string{"show", "a.yaml", "b.yaml"}},
		{"get without policy", []string{"get", "a.yaml"}},
		{"bad flag", []string{"check", "-nope", "a.yaml"}},
		{"bad flag after argument", []string{"check", "a.yaml", "-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCommand(t, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestMissingEnvFile(t *testing.T) {
	code, _, errOut := runCommand(t, "check", "-env-file", filepath.Join(t.TempDir(), "absent.env"), "config.yaml")
	assert.Equal(t, exitFail, code)
	assert.Contains(t, errOut, "failed to read env file")
}
