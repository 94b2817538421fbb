package scan

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinaryZeroByte(t *testing.T) {
	// A zero byte is decisive regardless of everything around it.
	sample := append([]byte("almost entirely printable text"), 0)
	assert.True(t, IsBinary(sample))
}

func TestIsBinaryNonPrintableRatio(t *testing.T) {
	noisy := bytes.Repeat([]byte{0x01, 'a'}, 100) // 50% non-printable
	assert.True(t, IsBinary(noisy))

	mostlyText := append([]byte{0x01}, bytes.Repeat([]byte("abc"), 100)...)
	assert.False(t, IsBinary(mostlyText))
}

func TestIsBinaryPlainText(t *testing.T) {
	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte("")))
	assert.False(t, IsBinary([]byte("package main\n\nfunc main() {}\n")))
	assert.False(t, IsBinary([]byte("héllo wörld — ünïcode\n")), "UTF-8 text is not binary")
}

func TestClassifierExtensionLookup(t *testing.T) {
	c := NewClassifier(nil)

	assert.Equal(t, "python", c.Language("src/app.py", nil))
	assert.Equal(t, "go", c.Language("main.go", nil))
	assert.Equal(t, "yaml", c.Language("deploy/values.YML", nil))
	assert.Equal(t, "text", c.Language("data.unknownext", nil))
}

func TestClassifierFilenameBeatsExtension(t *testing.T) {
	c := NewClassifier(nil)

	assert.Equal(t, "dockerfile", c.Language("Dockerfile", nil))
	assert.Equal(t, "makefile", c.Language("sub/Makefile", nil))
	assert.Equal(t, "text", c.Language(".gitignore", nil))
}

func TestClassifierShebangFallback(t *testing.T) {
	c := NewClassifier(nil)

	assert.Equal(t, "python", c.Language("bin/tool", []byte("#!/usr/bin/env python3\nprint('x')\n")))
	assert.Equal(t, "bash", c.Language("install", []byte("#!/bin/sh\necho hi\n")))
	assert.Equal(t, "javascript", c.Language("cli", []byte("#!/usr/bin/env node\n")))
	assert.Equal(t, "text", c.Language("notes", []byte("no directive here\n")))
}

func TestClassifierUserHints(t *testing.T) {
	c := NewClassifier(map[string]string{".zig": "zig", ".py": "python2"})

	assert.Equal(t, "zig", c.Language("main.zig", nil))
	assert.Equal(t, "python2", c.Language("legacy.py", nil), "user hints override the built-in table")
}
