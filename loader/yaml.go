package loader

import (
	"bytes"
	"io"
	"path"
	"strings"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DecodeData reads raw record data from a YAML or JSON document; name is only
// used to pick the format by extension (.json is JSON, anything else YAML).
// The root must be a mapping.
func DecodeData(name string, data []byte) (map[string]any, error) {
	var node any
	if strings.EqualFold(path.Ext(name), ".json") {
		dec := j.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&node); err != nil {
			return nil, errors.Wrapf(err, "loader: decode %s", name)
		}
		var extra any
		if err := dec.Decode(&extra); err != io.EOF {
			return nil, errors.Errorf("loader: decode %s: unexpected data after the JSON value", name)
		}
	} else if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrapf(err, "loader: decode %s", name)
	}
	m := yamlAnyToStringMap(node)
	if m == nil {
		return nil, errors.Errorf("loader: %s: expected a mapping at the document root", name)
	}
	return m, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
