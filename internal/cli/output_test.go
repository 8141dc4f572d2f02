package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/phaseboard/internal/models"
	boardservice "github.com/thenoetrevino/phaseboard/internal/services/board"
	"github.com/thenoetrevino/phaseboard/internal/testutil"
)

// ============================================================================
// Mock Types for Testing
// ============================================================================

type mockDataWithID struct {
	ID   string
	Name string
}

func (m mockDataWithID) GetID() string {
	return m.ID
}

type mockDataWithoutID struct {
	Name  string
	Value int
}

// captureStderr mirrors testutil.CaptureOutput for os.Stderr
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stderr = oldStderr
	return <-outC
}

// ============================================================================
// Success
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
		want interface{}
	}{
		{"string data", "simple string", "simple string"},
		{"integer data", 42, float64(42)},
		{"nil data", nil, nil},
		{"map data", map[string]interface{}{"test": "value"}, map[string]interface{}{"test": "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &OutputFormatter{JSON: true}
			var err error
			output := testutil.CaptureOutput(t, func() {
				err = formatter.Success(tt.data)
			})
			require.NoError(t, err)

			var result map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(output), &result), output)
			assert.Equal(t, true, result["success"])
			assert.Equal(t, tt.want, result["data"])
		})
	}
}

func TestOutputFormatter_Success_QuietPrintsID(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
		want string
	}{
		{"value receiver", mockDataWithID{ID: "abc", Name: "Test"}, "abc"},
		{"pointer to value receiver", &mockDataWithID{ID: "def"}, "def"},
		{"card", &models.Card{ID: "card-1", Title: "Hook"}, "card-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &OutputFormatter{Quiet: true}
			output := testutil.CaptureOutput(t, func() {
				assert.NoError(t, formatter.Success(tt.data))
			})
			assert.Equal(t, tt.want, strings.TrimSpace(output))
		})
	}
}

func TestOutputFormatter_Success_QuietWithoutIDFallsThrough(t *testing.T) {
	formatter := &OutputFormatter{Quiet: true, JSON: true}
	output := testutil.CaptureOutput(t, func() {
		assert.NoError(t, formatter.Success(mockDataWithoutID{Name: "x", Value: 1}))
	})
	assert.Contains(t, output, `"success":true`)
}

func TestOutputFormatter_Success_Human(t *testing.T) {
	formatter := &OutputFormatter{}
	output := testutil.CaptureOutput(t, func() {
		assert.NoError(t, formatter.Success(mockDataWithoutID{Name: "x", Value: 7}))
	})
	assert.Contains(t, output, "Name:x")
	assert.Contains(t, output, "Value:7")
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	formatter := &OutputFormatter{JSON: true}
	output := testutil.CaptureOutput(t, func() {
		assert.NoError(t, formatter.ErrorWithSuggestion("CARD_NOT_FOUND", "card x not found", "try again"))
	})

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]interface{})
	assert.Equal(t, "CARD_NOT_FOUND", errData["code"])
	assert.Equal(t, "card x not found", errData["message"])
	assert.Equal(t, "try again", errData["suggestion"])
}

func TestOutputFormatter_Error_JSONOmitsEmptySuggestion(t *testing.T) {
	formatter := &OutputFormatter{JSON: true}
	output := testutil.CaptureOutput(t, func() {
		assert.NoError(t, formatter.Error("ERROR", "boom"))
	})
	assert.NotContains(t, output, "suggestion")
}

func TestOutputFormatter_Error_HumanGoesToStderr(t *testing.T) {
	formatter := &OutputFormatter{}
	var stdout string
	stderr := captureStderr(t, func() {
		stdout = testutil.CaptureOutput(t, func() {
			assert.NoError(t, formatter.ErrorWithSuggestion("ERROR", "boom", "look here"))
		})
	})
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: boom")
	assert.Contains(t, stderr, "Suggestion: look here")
}

func TestOutputFormatter_Fail_CarriesExitCode(t *testing.T) {
	formatter := &OutputFormatter{JSON: true}
	cause := errors.Join(boardservice.ErrCardNotFound, errors.New("c9"))

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = formatter.Fail(cause, "")
	})

	assert.Equal(t, ExitNotFound, ExitCode(err))
	assert.ErrorIs(t, err, boardservice.ErrCardNotFound)
	assert.Contains(t, output, "CARD_NOT_FOUND")
}

func TestOutputFormatter_Usage(t *testing.T) {
	formatter := &OutputFormatter{JSON: true}
	var err error
	output := testutil.CaptureOutput(t, func() {
		err = formatter.Usage("give one", "like this")
	})
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.Contains(t, output, `"code":"USAGE"`)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("plain")))
	assert.Equal(t, ExitValidation, ExitCode(&CodedError{Code: ExitValidation, Err: errors.New("bad")}))
}
