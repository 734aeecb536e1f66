package llm

import "strings"

// StripJSONFence removes markdown code fences that chat models tend to wrap
// around JSON output, returning the bare payload.
func StripJSONFence(s string) string {
	out := strings.TrimSpace(s)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```json")
		out = strings.TrimPrefix(out, "```")
		out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	}
	return strings.TrimSpace(out)
}
