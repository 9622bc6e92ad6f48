// Package types provides type definitions for structured data used throughout the cardforge pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolation_JSONMarshaling(t *testing.T) {
	lineIndex := 2
	charCount := 95
	violation := Violation{
		Type:      "line_too_long",
		Severity:  "error",
		Details:   "Line exceeds maximum character count",
		Section:   "About",
		LineIndex: &lineIndex,
		CharCount: &charCount,
		LineText:  "a long line",
	}

	jsonBytes, err := json.MarshalIndent(violation, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"type": "line_too_long"`)
	assert.Contains(t, string(jsonBytes), `"section": "About"`)
	assert.Contains(t, string(jsonBytes), `"line_index": 2`)
	assert.Contains(t, string(jsonBytes), `"char_count": 95`)

	var unmarshaled Violation
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, violation, unmarshaled)
}

func TestViolation_OptionalFields(t *testing.T) {
	violation := Violation{
		Type:     "too_many_lines",
		Severity: "error",
		Details:  "Section has too many lines",
	}

	jsonBytes, err := json.Marshal(violation)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "line_index")
	assert.NotContains(t, string(jsonBytes), "char_count")
	assert.NotContains(t, string(jsonBytes), "section")
}
