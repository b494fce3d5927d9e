package filesystem

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// ReadFile returns the file as text. Files that are not valid UTF-8 are
// rejected rather than mangled.
func (p *Provider) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("failed to read file: %s is not valid UTF-8", path)
	}
	return string(data), nil
}

// WriteFile replaces the file's contents, creating it if needed.
func (p *Provider) WriteFile(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
