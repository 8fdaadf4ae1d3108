package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wikiparse/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "empty", content: "", expected: "text"},
		{name: "whitespace", content: "  \n\t", expected: "text"},
		{name: "shebang bash", content: "#!/bin/bash\necho hello", expected: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", expected: "python"},
		{name: "go", content: "package main\n\nfunc main() {}\n", expected: "go"},
		{name: "php", content: "<?php echo 'hi'; ?>", expected: "php"},
		{name: "lua module", content: "local p = {}\nlocal function f() return 1 end\nreturn p", expected: "lua"},
		{name: "python", content: "def foo():\n    pass\n", expected: "python"},
		{name: "json", content: `{"key": "value"}`, expected: "json"},
		{name: "sql", content: "select * from page", expected: "sql"},
		{name: "rust", content: "fn main() {\n    println!(\"hi\");\n}", expected: "rust"},
		{name: "javascript", content: "console.log(1);", expected: "javascript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Empty(t, langdetect.Normalize("  "))
	assert.Equal(t, "c++", langdetect.Normalize("cpp"))
	assert.Equal(t, "bash", langdetect.Normalize("Shell"))
	assert.Equal(t, "javascript", langdetect.Normalize("JS"))
	assert.Equal(t, "haskell", langdetect.Normalize("haskell"))
}

func TestForCodeBlockPrefersAttribute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "python", langdetect.ForCodeBlock("py", "package main"))
	assert.Equal(t, "go", langdetect.ForCodeBlock("", "package main"))
}
