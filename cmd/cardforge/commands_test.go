package main

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cardforge/internal/types"
)

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	md := writeFixture(t, dir, "profile.md", profileDocument)
	out := filepath.Join(dir, "profile.json")

	require.NoError(t, execute(t, "parse", "-m", md, "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var profile types.Profile
	require.NoError(t, json.Unmarshal(data, &profile))
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "Staff Engineer", profile.Title)
	assert.Len(t, profile.Sections, 3)
}

func TestSummarizeComposeValidate(t *testing.T) {
	dir := t.TempDir()
	md := writeFixture(t, dir, "profile.md", profileDocument)
	photo := writePhotoFixture(t, dir)
	contentPath := filepath.Join(dir, "content.json")
	cardPath := filepath.Join(dir, "out", "card.png")

	require.NoError(t, execute(t, "summarize", "-m", md, "-o", contentPath))

	data, err := os.ReadFile(contentPath)
	require.NoError(t, err)
	var content types.CardContent
	require.NoError(t, json.Unmarshal(data, &content))
	require.NotEmpty(t, content.Sections)
	for _, s := range content.Sections {
		assert.Equal(t, types.SourceVerbatim, s.Source)
	}

	require.NoError(t, execute(t, "validate", "-c", contentPath))

	require.NoError(t, execute(t, "compose", "-m", md, "-c", contentPath, "-i", photo, "-o", cardPath))
	w, h := decodePNG(t, cardPath)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestValidateCommand_Violations(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "content.json", `{
  "budget": {"max_lines_per_section": 1, "max_chars_per_line": 10},
  "sections": [{"kind": "competencies", "heading": "Skills", "lines": ["Go", "Kubernetes"], "source": "verbatim"}]
}`)

	err := execute(t, "validate", "-c", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violations")
}

func TestComposeCommand_RejectsInvalidContent(t *testing.T) {
	dir := t.TempDir()
	md := writeFixture(t, dir, "profile.md", profileDocument)
	photo := writePhotoFixture(t, dir)
	path := writeFixture(t, dir, "content.json", `{"budget": {"max_lines_per_section": 4}, "sections": []}`)

	err := execute(t, "compose", "-m", md, "-c", path, "-i", photo, "-o", filepath.Join(dir, "card.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	md := writeFixture(t, dir, "profile.md", profileDocument)
	photo := writePhotoFixture(t, dir)
	out := filepath.Join(dir, "card.png")

	require.NoError(t, execute(t, "generate", "-m", md, "-i", photo, "-o", out))

	w, h := decodePNG(t, out)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestGenerateCommand_MissingPhoto(t *testing.T) {
	dir := t.TempDir()
	md := writeFixture(t, dir, "profile.md", profileDocument)

	err := execute(t, "generate", "-m", md, "-i", filepath.Join(dir, "absent.png"), "-o", filepath.Join(dir, "card.png"))
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
}

func TestGenerateCommand_BadProfile(t *testing.T) {
	dir := t.TempDir()
	md := writeFixture(t, dir, "profile.md", "no heading here\n")
	photo := writePhotoFixture(t, dir)

	err := execute(t, "generate", "-m", md, "-i", photo, "-o", filepath.Join(dir, "card.png"))
	require.Error(t, err)
	assert.Equal(t, exitInput, exitCode(err))
}
