package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Parser converts between nested JSON objects and flat dotted keys:
//
//	{"demo": {"variant": "accumulator"}}  <->  demo.variant = accumulator
type Parser struct{}

// Parse flattens JSON content into entries tagged with source and level.
// Blank content yields no entries.
func (p *Parser) Parse(content string, source ConfigSource, level ConfigLevel) (map[string]*ConfigEntry, error) {
	result := make(map[string]*ConfigEntry)

	if strings.TrimSpace(content) == "" {
		return result, nil
	}

	var root map[string]any
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return nil, NewInvalidFormatError("parse", string(source), err)
	}
	if root == nil {
		return nil, NewInvalidFormatError("parse", string(source), fmt.Errorf("configuration must be a JSON object"))
	}

	if err := p.flatten(root, "", result, source, level); err != nil {
		return nil, err
	}
	return result, nil
}

// Serialize nests entries back into an indented JSON object with sorted keys.
func (p *Parser) Serialize(entries map[string]*ConfigEntry) (string, error) {
	root := make(map[string]any)

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := setNested(root, key, entries[key].Value); err != nil {
			return "", err
		}
	}

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return "", NewInvalidFormatError("serialize", "", err)
	}
	return string(data) + "\n", nil
}

func (p *Parser) flatten(section map[string]any, prefix string, result map[string]*ConfigEntry, source ConfigSource, level ConfigLevel) error {
	for name, value := range section {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		switch v := value.(type) {
		case map[string]any:
			if err := p.flatten(v, key, result, source, level); err != nil {
				return err
			}
		case []any:
			return NewInvalidFormatError("parse", string(source), fmt.Errorf("key %q: arrays are not supported", key))
		case nil:
			// skipped
		case string:
			result[key] = NewEntry(key, v, level, source)
		default:
			result[key] = NewEntry(key, fmt.Sprintf("%v", v), level, source)
		}
	}
	return nil
}

// setNested writes value at a dotted key path, creating intermediate
// objects. A scalar already sitting on the path is a conflict.
func setNested(root map[string]any, key, value string) error {
	segments := strings.Split(key, ".")
	current := root

	for _, seg := range segments[:len(segments)-1] {
		next, exists := current[seg]
		if !exists {
			child := make(map[string]any)
			current[seg] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return NewInvalidFormatError("serialize", "", fmt.Errorf("key %q conflicts with scalar %q", key, seg))
		}
		current = child
	}

	last := segments[len(segments)-1]
	if _, isSection := current[last].(map[string]any); isSection {
		return NewInvalidFormatError("serialize", "", fmt.Errorf("key %q conflicts with an existing section", key))
	}
	current[last] = value
	return nil
}
