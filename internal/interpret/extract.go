package interpret

import (
	"encoding/json"
	"strconv"
	"strings"
)

// extractObject pulls the first-{ to last-} span out of the completion
// content and parses it as a JSON object. Models wrap replies in prose or
// code fences often enough that decoding the raw content is hopeless.
func extractObject(content string) (map[string]any, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// stringField coerces obj[key] to text. Missing and null both read as "".
func stringField(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok {
		return ""
	}
	return coerceString(v)
}

// stringFieldOr is stringField with a default for missing or null values.
func stringFieldOr(obj map[string]any, key, def string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return def
	}
	return coerceString(v)
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		// Nested arrays or objects; keep whatever the model sent.
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
