package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) Infof(format string, v ...any) { r.add("info", format, v...) }
func (r *recordingLogger) Warnf(format string, v ...any) { r.add("warn", format, v...) }

func (r *recordingLogger) add(level, format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: fmt.Sprintf(format, v...)})
}

func (r *recordingLogger) messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func (r *recordingLogger) contains(level, substr string) bool {
	for _, msg := range r.messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const scenarioYAML = `
policies:
  - name: "p1"
    url: "http://x"
    llms:
      - name: "gpt"
        api_base: "http://api"
        api_key: "${KEY}"
        model: "gpt-4"
`
