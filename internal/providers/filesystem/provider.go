package filesystem

import (
	"context"

	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/shared/types"
)

// Provider implements the filesystem service
type Provider struct {
	cfg    Config
	logger *logging.Logger
}

// NewProvider creates a filesystem provider
func NewProvider(cfg Config, logger *logging.Logger) *Provider {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{
		cfg:    cfg,
		logger: logger.Component("filesystem"),
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "Project file tree, file contents and metadata for the terminal's working directory",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"list",
			"stat",
			"parse",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	pathParam := types.Parameter{Name: "path", Type: "string", Description: "Absolute path", Required: true}

	return []types.Tool{
		{
			ID:          "filesystem.read_directory",
			Name:        "Read Directory",
			Description: "Directory tree, directories first, hidden and build folders skipped",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "array",
		},
		{
			ID:          "filesystem.read_file",
			Name:        "Read File",
			Description: "Read a UTF-8 text file",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "string",
		},
		{
			ID:          "filesystem.write_file",
			Name:        "Write File",
			Description: "Replace a file's contents",
			Parameters: []types.Parameter{
				pathParam,
				{Name: "contents", Type: "string", Description: "New file contents", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.get_file_info",
			Name:        "File Info",
			Description: "Size, directory flag, read-only flag, MIME type and charset",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "object",
		},
		{
			ID:          "filesystem.read_structured",
			Name:        "Read Structured File",
			Description: "Parse a JSON, YAML or TOML file",
			Parameters: []types.Parameter{
				pathParam,
				{Name: "format", Type: "string", Description: "json, yaml or toml. Inferred from the extension when omitted", Required: false},
			},
			Returns: "object",
		},
	}
}

// Execute routes to appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "filesystem.read_directory":
		return p.readDirectory(ctx, params)
	case "filesystem.read_file":
		return p.readFile(params)
	case "filesystem.write_file":
		return p.writeFile(params)
	case "filesystem.get_file_info":
		return p.getFileInfo(params)
	case "filesystem.read_structured":
		return p.readStructured(params)
	default:
		return nil, types.UnknownTool(toolID)
	}
}

func (p *Provider) readDirectory(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, err := pathParam(params)
	if err != nil {
		return nil, err
	}

	nodes, err := p.ReadDirectory(ctx, path)
	if err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []*Node{}
	}
	return types.Success(map[string]interface{}{"path": path, "entries": nodes}), nil
}

func (p *Provider) readFile(params map[string]interface{}) (*types.Result, error) {
	path, err := pathParam(params)
	if err != nil {
		return nil, err
	}

	contents, err := p.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return types.Success(map[string]interface{}{"path": path, "contents": contents}), nil
}

func (p *Provider) writeFile(params map[string]interface{}) (*types.Result, error) {
	path, err := pathParam(params)
	if err != nil {
		return nil, err
	}

	contents, ok := params["contents"].(string)
	if !ok {
		return nil, types.InvalidParam("contents parameter required")
	}

	if err := p.WriteFile(path, contents); err != nil {
		return nil, err
	}
	return types.Success(map[string]interface{}{"written": true, "path": path}), nil
}

func (p *Provider) getFileInfo(params map[string]interface{}) (*types.Result, error) {
	path, err := pathParam(params)
	if err != nil {
		return nil, err
	}

	info, err := p.Info(path)
	if err != nil {
		return nil, err
	}
	return types.Success(map[string]interface{}{"path": path, "info": info}), nil
}

func (p *Provider) readStructured(params map[string]interface{}) (*types.Result, error) {
	path, err := pathParam(params)
	if err != nil {
		return nil, err
	}

	format, _ := params["format"].(string)
	data, err := p.ReadStructured(path, format)
	if err != nil {
		return nil, err
	}
	return types.Success(map[string]interface{}{"path": path, "data": data}), nil
}

func pathParam(params map[string]interface{}) (string, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return "", types.InvalidParam("path parameter required")
	}
	return path, nil
}
