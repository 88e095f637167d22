package executor

import (
	"fmt"
	"path"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// mergeContent combines existing and incoming file content. Structured
// formats are detected by extension and merged key-wise with the incoming
// side winning; everything else is treated as text and appended.
func mergeContent(rel string, existing, incoming []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(rel)) {
	case ".json":
		return mergeJSON(existing, incoming)
	case ".yaml", ".yml":
		return mergeYAML(existing, incoming)
	case ".toml":
		return mergeTOML(existing, incoming)
	}
	return mergeText(existing, incoming), nil
}

func mergeJSON(existing, incoming []byte) ([]byte, error) {
	var dst, src map[string]any
	if err := sonic.Unmarshal(existing, &dst); err != nil {
		return nil, fmt.Errorf("existing content is not a JSON object: %w", err)
	}
	if err := sonic.Unmarshal(incoming, &src); err != nil {
		return nil, fmt.Errorf("incoming content is not a JSON object: %w", err)
	}
	out, err := sonic.MarshalIndent(deepMerge(dst, src), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func mergeYAML(existing, incoming []byte) ([]byte, error) {
	var dst, src map[string]any
	if err := yaml.Unmarshal(existing, &dst); err != nil {
		return nil, fmt.Errorf("existing content is not a YAML mapping: %w", err)
	}
	if err := yaml.Unmarshal(incoming, &src); err != nil {
		return nil, fmt.Errorf("incoming content is not a YAML mapping: %w", err)
	}
	if dst == nil {
		dst = make(map[string]any)
	}
	return yaml.Marshal(deepMerge(dst, src))
}

func mergeTOML(existing, incoming []byte) ([]byte, error) {
	var dst, src map[string]any
	if err := toml.Unmarshal(existing, &dst); err != nil {
		return nil, fmt.Errorf("existing content is not a TOML document: %w", err)
	}
	if err := toml.Unmarshal(incoming, &src); err != nil {
		return nil, fmt.Errorf("incoming content is not a TOML document: %w", err)
	}
	return toml.Marshal(deepMerge(dst, src))
}

// mergeText appends incoming after existing with a newline separator.
func mergeText(existing, incoming []byte) []byte {
	out := make([]byte, 0, len(existing)+len(incoming)+1)
	out = append(out, existing...)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return append(out, incoming...)
}

// deepMerge merges src into dst recursively. Nested maps merge key-wise;
// any other overlapping value is taken from src. dst is modified in place.
func deepMerge(dst, src map[string]any) map[string]any {
	for key, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[key].(map[string]any); ok {
				dst[key] = deepMerge(dm, sm)
				continue
			}
		}
		dst[key] = sv
	}
	return dst
}
