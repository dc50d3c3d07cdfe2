package app

import (
	"fmt"
	"os"
	"strings"
)

// API keys managed through the admin endpoints, in response order.
var apiKeyFields = []struct {
	Field  string
	EnvKey string
}{
	{Field: "groq", EnvKey: "GROQ_API_KEY"},
	{Field: "gemini", EnvKey: "GEMINI_API_KEY"},
}

const maskRune = '•'

// MaskSecret renders a secret with only its first and last four characters
// visible. Values shorter than eight characters mask to the empty string.
func MaskSecret(val string) string {
	runes := []rune(val)
	if len(runes) < 8 {
		return ""
	}
	masked := make([]rune, 0, len(runes))
	masked = append(masked, runes[:4]...)
	for i := 0; i < len(runes)-8; i++ {
		masked = append(masked, maskRune)
	}
	masked = append(masked, runes[len(runes)-4:]...)
	return string(masked)
}

// MaskedAPIKeys returns the managed keys from the process environment, each
// masked for display.
func (a *App) MaskedAPIKeys() map[string]string {
	keys := make(map[string]string, len(apiKeyFields))
	for _, k := range apiKeyFields {
		keys[k.Field] = MaskSecret(os.Getenv(k.EnvKey))
	}
	return keys
}

// UpdateAPIKeys writes non-empty values into the env file as KEY=value lines
// (replacing an existing line or appending a new one) and mirrors them into
// the process environment. The read-modify-write sequence is serialized by a
// process-wide mutex so concurrent admin writers cannot corrupt the file.
func (a *App) UpdateAPIKeys(values map[string]string) ([]string, error) {
	a.envMu.Lock()
	defer a.envMu.Unlock()

	content := ""
	if data, err := os.ReadFile(a.envFile); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read env file: %w", err)
	}

	updated := make([]string, 0, len(apiKeyFields))
	for _, k := range apiKeyFields {
		value := strings.TrimSpace(values[k.Field])
		if value == "" {
			continue
		}
		content = upsertEnvLine(content, k.EnvKey, value)
		if err := os.Setenv(k.EnvKey, value); err != nil {
			return nil, fmt.Errorf("set env %s: %w", k.EnvKey, err)
		}
		updated = append(updated, k.EnvKey)
	}

	if err := os.WriteFile(a.envFile, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("write env file: %w", err)
	}
	return updated, nil
}

// upsertEnvLine rewrites every existing KEY= line in place, or appends one,
// leaving every other line untouched. Rewriting all occurrences matters when
// the file carries duplicates: dotenv loaders let the last line win, so a
// stale trailing duplicate would shadow the new value.
func upsertEnvLine(content, key, value string) string {
	newLine := key + "=" + value
	lines := strings.Split(content, "\n")
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), key+"=") {
			lines[i] = newLine
			replaced = true
		}
	}
	if replaced {
		return strings.Join(lines, "\n")
	}
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return newLine + "\n"
	}
	return content + "\n" + newLine + "\n"
}
