package core

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// VarContext holds resolved input variables from a varfile.
type VarContext map[string]string

// varRegex matches {{ varName }} placeholders in step string fields.
var varRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9\._-]+)\s*\}\}`)

// envRegex matches a varfile value of the form {{ env.NAME }}.
var envRegex = regexp.MustCompile(`^\s*\{\{\s*env\.([A-Za-z0-9_]+)\s*}}\s*$`)

// ResolveVarfile loads a YAML varfile, resolving {{ env.NAME }} values from
// the environment. It returns the context plus the list of env-sourced
// values, which callers should treat as secrets for log redaction.
func ResolveVarfile(path string) (VarContext, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading varfile %q: %w", path, err)
	}

	var rawVars map[string]string
	if err := yaml.Unmarshal(data, &rawVars); err != nil {
		return nil, nil, fmt.Errorf("parsing varfile YAML from %q: %w", path, err)
	}

	resolved := make(VarContext, len(rawVars))
	var secrets []string
	for key, val := range rawVars {
		match := envRegex.FindStringSubmatch(val)
		if match == nil {
			resolved[key] = val
			continue
		}
		envVal, exists := os.LookupEnv(match[1])
		if !exists {
			return nil, nil, fmt.Errorf("environment variable %q not set for varfile key %q", match[1], key)
		}
		resolved[key] = envVal
		if envVal != "" {
			secrets = append(secrets, envVal)
		}
	}
	return resolved, secrets, nil
}

// InterpolateValue walks a decoded JSON value and substitutes {{ name }}
// placeholders in every string. Unknown names are left in place so the run
// surfaces them verbatim in selectors and logs.
func InterpolateValue(value any, vars VarContext) any {
	switch v := value.(type) {
	case string:
		return varRegex.ReplaceAllStringFunc(v, func(placeholder string) string {
			name := varRegex.FindStringSubmatch(placeholder)[1]
			if resolved, ok := vars[name]; ok {
				return resolved
			}
			return placeholder
		})
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = InterpolateValue(val, vars)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = InterpolateValue(item, vars)
		}
		return out
	default:
		return v
	}
}
