package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		required bool
		wantErr  bool
	}{
		{"uuid", "3f1c7c2a-6a8e-4c57-9a55-0d7f3b9b2c11", true, false},
		{"underscore", "term_1", true, false},
		{"empty required", "", true, true},
		{"empty optional", "", false, false},
		{"dot", "a.b", true, true},
		{"slash", "a/b", true, true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id, "session_id", tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateToolID(t *testing.T) {
	assert.NoError(t, ValidateToolID("terminal.spawn_shell", "tool_id", true))
	assert.Error(t, ValidateToolID("terminal spawn", "tool_id", true))
	assert.EqualError(t, ValidateToolID("", "tool_id", true), "tool_id is required")
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("terminal", false))
	assert.NoError(t, ValidateCategory("", false))
	assert.Error(t, ValidateCategory("Terminal", false))
}

func TestValidateInput(t *testing.T) {
	assert.NoError(t, ValidateInput("\x03"))
	assert.NoError(t, ValidateInput("ls\x00\n"))
	assert.Error(t, ValidateInput(strings.Repeat("x", MaxInputSize+1)))
}

func TestValidateDimension(t *testing.T) {
	assert.NoError(t, ValidateDimension(0, "cols"))
	assert.NoError(t, ValidateDimension(MaxDimension, "cols"))
	assert.Error(t, ValidateDimension(-1, "cols"))
	assert.Error(t, ValidateDimension(MaxDimension+1, "rows"))
}
