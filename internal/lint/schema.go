package lint

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// frontMatterSchema encodes the structural rules for post front matter. Keys
// outside this set are allowed; the schema only constrains the known ones.
const frontMatterSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["title", "date"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"slug": {"type": "string"},
		"date": {"type": "string"},
		"draft": {"type": "boolean"},
		"tags": {"type": "array", "items": {"type": "string"}},
		"categories": {"type": "array", "items": {"type": "string"}},
		"author": {"type": "string"},
		"description": {"type": "string"},
		"more_link": {"type": "string"},
		"url": {"type": "string"}
	}
}`

func compileFrontMatterSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("frontmatter.schema.json", strings.NewReader(frontMatterSchema)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	schema, err := compiler.Compile("frontmatter.schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return schema, nil
}

type schemaIssue struct {
	location string
	message  string
}

func collectSchemaIssues(err *jsonschema.ValidationError) []schemaIssue {
	if err == nil {
		return nil
	}
	issues := []schemaIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, schemaIssue{
				location: strings.TrimSpace(node.InstanceLocation),
				message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
