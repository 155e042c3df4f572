package lint

import (
	"errors"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var errNoFrontMatter = errors.New("lint: no front matter block")

// extractFrontMatter returns the raw YAML between the opening and closing
// delimiters. The block must start on the first line of the file.
func extractFrontMatter(source []byte) (string, error) {
	text := strings.ReplaceAll(string(source), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") && text != "---" {
		return "", errNoFrontMatter
	}

	rest := strings.TrimPrefix(text, "---\n")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", errNoFrontMatter
	}
	return rest[:end], nil
}

// decodeFrontMatter parses the YAML block while preserving scalar text so the
// date rule can inspect the literal value an author wrote.
func decodeFrontMatter(block string) (map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block), &root); err != nil {
		return nil, err
	}

	value := nodeToValue(&root)
	mapping, ok := value.(map[string]any)
	if !ok {
		if value == nil {
			return map[string]any{}, nil
		}
		return nil, errors.New("lint: front matter is not a mapping")
	}
	return mapping, nil
}

func nodeToValue(node *yaml.Node) any {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return nodeToValue(node.Content[0])
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			out[key] = nodeToValue(node.Content[i+1])
		}
		return out
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, nodeToValue(item))
		}
		return out
	case yaml.AliasNode:
		return nodeToValue(node.Alias)
	case yaml.ScalarNode:
		return scalarValue(node)
	default:
		return nil
	}
}

// scalarValue keeps timestamps and strings as their literal text while
// resolving booleans and numbers, so schema validation sees the same shapes
// JSON would.
func scalarValue(node *yaml.Node) any {
	switch node.Tag {
	case "!!bool":
		value, err := strconv.ParseBool(node.Value)
		if err != nil {
			return node.Value
		}
		return value
	case "!!int":
		value, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return node.Value
		}
		return value
	case "!!float":
		value, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return node.Value
		}
		return value
	case "!!null":
		return nil
	default:
		return node.Value
	}
}

func stringField(meta map[string]any, key string) string {
	value, _ := meta[key].(string)
	return strings.TrimSpace(value)
}
