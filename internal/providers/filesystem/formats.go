package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format names accepted by ReadStructured.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ReadStructured parses a JSON, YAML or TOML file. An empty format is
// inferred from the extension.
func (p *Provider) ReadStructured(path, format string) (interface{}, error) {
	if format == "" {
		format = formatFromExt(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var parsed interface{}
	switch format {
	case FormatJSON:
		err = sonic.Unmarshal(data, &parsed)
	case FormatYAML:
		err = yaml.Unmarshal(data, &parsed)
	case FormatTOML:
		var doc map[string]interface{}
		err = toml.Unmarshal(data, &doc)
		parsed = doc
	default:
		return nil, fmt.Errorf("unsupported format %q for %s", format, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s parse error: %w", strings.ToUpper(format), err)
	}
	return parsed, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return ""
	}
}
