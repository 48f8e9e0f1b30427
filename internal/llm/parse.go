package llm

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/greenpromise/emissions-tracker/internal/common"
)

// Models wrap JSON in markdown fences or chat it up around the payload
// despite instructions. CleanPayload strips fences and trims to the
// outermost array so the decoder sees bare JSON.
func CleanPayload(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

const itemsSchemaJSON = `{"type": "array"}`

var itemsSchema = jsonschema.MustCompileString("items.json", itemsSchemaJSON)

// ParseItems decodes a provider response into a list of loosely typed
// objects. Non-object elements are dropped rather than rejected; field
// coercion is the caller's problem.
func ParseItems(raw string) ([]map[string]any, error) {
	cleaned := CleanPayload(raw)

	var generic any
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		return nil, common.WrapError(common.ErrExtraction, "response is not valid JSON")
	}
	if err := itemsSchema.Validate(generic); err != nil {
		return nil, common.WrapError(common.ErrExtraction, "response is not a JSON array")
	}

	list, _ := generic.([]any)
	items := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items, nil
}

// StringField reads a string-valued key, coercing numbers.
func StringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// NumberField reads a numeric key, tolerating numbers sent as strings.
// Unparseable values read as zero.
func NumberField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// IntField reads an integer key, tolerating floats and strings.
// Absent or unparseable values read as zero.
func IntField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
