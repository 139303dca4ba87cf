package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line     string
		wantKind lineKind
		wantText string
	}{
		{"", lineBlank, ""},
		{"   ", lineBlank, ""},
		{"# Interview Prep", lineHeading, "Interview Prep"},
		{"## Key Strengths", lineSubheading, "Key Strengths"},
		{"- point one", lineBullet, "point one"},
		{"* point two", lineBullet, "point two"},
		{"  - **Bold** point", lineBullet, "Bold point"},
		{"Plain **emphasis** text", lineParagraph, "Plain emphasis text"},
		{"#hashtag", lineParagraph, "#hashtag"},
		{"-dash", lineParagraph, "-dash"},
	}

	for _, tt := range tests {
		kind, text := classifyLine(tt.line)
		assert.Equal(t, tt.wantKind, kind, "line %q", tt.line)
		assert.Equal(t, tt.wantText, text, "line %q", tt.line)
	}
}

func TestRenderWritesPerOwnerPDF(t *testing.T) {
	dir := t.TempDir()
	owner := uuid.New()
	r := NewCheatsheetRenderer(dir)

	text := "# Title\n\n## Key Strengths\n- point one\n* point two\nClosing paragraph with **bold**."
	path, err := r.Render(owner, "cheatsheet_test.pdf", text)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, owner.String(), "cheatsheet_test.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))

	f, reader, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 1, reader.NumPage())
}

func TestRenderPaginatesLongText(t *testing.T) {
	r := NewCheatsheetRenderer(t.TempDir())

	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("- a talking point that takes up a line\n")
	}

	path, err := r.Render(uuid.New(), "long.pdf", sb.String())
	require.NoError(t, err)

	f, reader, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Greater(t, reader.NumPage(), 1)
}

func TestRenderFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	base := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0644))

	_, err := NewCheatsheetRenderer(base).Render(uuid.New(), "c.pdf", "# Title")
	assert.Error(t, err)
}
