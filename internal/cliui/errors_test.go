package cliui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "UNKNOWN ENTITY",
				Problem: "Cannot find entity 'Pst'.",
			},
			contains: []string{
				"❌",
				"UNKNOWN ENTITY",
				"Cannot find entity 'Pst'.",
			},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "UNKNOWN ENTITY",
				Problem:     "Cannot find entity 'Pst'.",
				Suggestions: []string{"Post", "User"},
			},
			contains: []string{
				"Did you mean: Post, User?",
			},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "COMPILE FAILED",
				Problem: "unexpected token",
				HelpCommands: []string{
					"Get help: erdc build --help",
				},
			},
			contains: []string{
				"→ Get help: erdc build --help",
			},
		},
		{
			name: "warning message",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "@hint.group has no rendering effect yet",
			},
			contains: []string{
				"⚠️",
				"@hint.group has no rendering effect yet",
			},
		},
		{
			name: "info message",
			opts: ErrorOptions{
				Level:   ErrorLevelInfo,
				Problem: "Compiled 12 entities",
			},
			contains: []string{
				"ℹ️",
				"Compiled 12 entities",
			},
		},
		{
			name: "error with consequence",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "CONFIGURATION ERROR",
				Problem:     ".erdc.yaml could not be parsed",
				Consequence: "falling back to default render configuration",
			},
			contains: []string{
				".erdc.yaml could not be parsed",
				"falling back to default render configuration",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatError(tt.opts)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() output missing expected string:\nExpected to contain: %q\nGot: %q", expected, result)
				}
			}
		})
	}
}

func TestEntityNotFoundError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := EntityNotFoundError("Pst", "relationship endpoint", []string{"Post", "User"}, true)

	expected := []string{
		"UNKNOWN ENTITY",
		"Cannot find entity 'Pst' (in relationship endpoint).",
		"Did you mean: Post, User?",
		"List entities in this schema: erdc build --verbose",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("EntityNotFoundError() missing expected string: %q", exp)
		}
	}
}

func TestViewNotFoundError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ViewNotFoundError("Summry", []string{"Summary"}, true)

	expected := []string{
		"UNKNOWN VIEW",
		"Cannot find view 'Summry'.",
		"Did you mean: Summary?",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ViewNotFoundError() missing expected string: %q", exp)
		}
	}
}

func TestCompileError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := CompileError("1:5: expected '{', found identifier", true)

	expected := []string{
		"COMPILE FAILED",
		"1:5: expected '{', found identifier",
		"Get help: erdc build --help",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("CompileError() missing expected string: %q", exp)
		}
	}
}

func TestWriteError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "TEST ERROR",
		Problem: "This is a test",
	}

	WriteError(&buf, opts)

	output := buf.String()
	if !strings.Contains(output, "TEST ERROR") {
		t.Errorf("WriteError() did not write to buffer correctly")
	}
}

func TestFormatSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := FormatSuccess("Compiled diagram.svg", true)

	if !strings.Contains(result, "✓") {
		t.Errorf("FormatSuccess() missing checkmark")
	}
	if !strings.Contains(result, "Compiled diagram.svg") {
		t.Errorf("FormatSuccess() missing message")
	}
}

func TestWriteSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	WriteSuccess(&buf, "Test success", true)

	output := buf.String()
	if !strings.Contains(output, "✓") {
		t.Errorf("WriteSuccess() missing checkmark")
	}
	if !strings.Contains(output, "Test success") {
		t.Errorf("WriteSuccess() missing message")
	}
}

func TestWarning(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Warning("@hint.group is informational only", nil, true)

	expected := []string{
		"⚠️",
		"@hint.group is informational only",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Warning() missing expected string: %q", exp)
		}
	}
}

func TestInfo(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Info("Process starting", true)

	expected := []string{
		"ℹ️",
		"Process starting",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Info() missing expected string: %q", exp)
		}
	}
}

func TestConfigError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ConfigError("Invalid YAML syntax", []string{"Check indentation"}, true)

	expected := []string{
		"CONFIGURATION ERROR",
		"Invalid YAML syntax",
		"Did you mean: Check indentation?",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ConfigError() missing expected string: %q", exp)
		}
	}
}
