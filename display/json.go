package display

import (
	"encoding/json"
)

// MarshalJSON marshals JSON with two-space indentation for people reading
// a terminal, or compactly when compact is set (pipes into jq, MCP results).
func MarshalJSON(v interface{}, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
