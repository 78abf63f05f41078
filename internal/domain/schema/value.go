package schema

import "encoding/json"

// object is a decoded JSON-LD node.
type object map[string]any

// truthy follows JSON-LD authoring tools: null, false, "", and 0 count as
// absent; any array or object is present.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

func (o object) has(key string) bool { return truthy(o[key]) }

func (o object) obj(key string) (object, bool) {
	m, ok := o[key].(map[string]any)
	return object(m), ok
}

func (o object) list(key string) ([]any, bool) {
	l, ok := o[key].([]any)
	return l, ok
}

// types returns the declared @type values. @type may be a string or an array
// of strings.
func (o object) types() []string {
	switch t := o["@type"].(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (o object) is(typeName string) bool {
	for _, t := range o.types() {
		if t == typeName {
			return true
		}
	}
	return false
}

// equalsNumber reports whether v is a JSON number equal to n.
func equalsNumber(v any, n float64) bool {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == n
	case float64:
		return t == n
	}
	return false
}

// asObjects normalizes a single node or an array of nodes to a slice.
func asObjects(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{v}
}

func display(v any) string {
	switch t := v.(type) {
	case nil:
		return "missing"
	case string:
		return `"` + t + `"`
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "?"
		}
		return string(b)
	}
}
