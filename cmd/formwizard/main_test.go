package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/internal/config"
)

const studentForm = "../../pkg/testsupport/testdata/student_form.json"

// executeCommand runs a cobra command with the given arguments and returns the output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err = root.Execute()
	return buf.String(), err
}

func TestRootListsCommands(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "fill", "render", "lint"} {
		assert.Contains(t, out, name)
	}
}

func TestRenderVanillaSection(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "render", "--schema", studentForm, "--section", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Preferences")
	assert.Contains(t, out, `data-testid="submit-button"`)
	assert.Contains(t, out, "<style>")
}

func TestRenderFragment(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "render", "--schema", studentForm, "--fragment")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<form"), out)
	assert.Contains(t, out, "Personal Information")
}

func TestRenderText(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "render", "--schema", studentForm, "--renderer", "tui")
	require.NoError(t, err)
	assert.Contains(t, out, "Personal Information (1/2)")
	assert.Contains(t, out, "First Name *")
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := executeCommand(newRootCmd(), "render", "--schema", studentForm, "--section", "3")
	assert.ErrorContains(t, err, "out of range")

	_, err = executeCommand(newRootCmd(), "render", "--schema", studentForm, "--renderer", "pdf")
	assert.ErrorContains(t, err, "available: tui, vanilla")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLintValidFile(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "lint", studentForm)
	require.NoError(t, err)
	assert.Contains(t, out, "student_form.json: ok")
}

func TestLintReportsProblems(t *testing.T) {
	path := writeFile(t, "broken.yaml", `
formTitle: Broken
sections:
  - sectionId: "1"
    title: One
    fields:
      - fieldId: color
        type: colour-picker
        label: Color
`)
	out, err := executeCommand(newRootCmd(), "lint", path)
	require.True(t, errors.Is(err, errLintFailed), "got %v", err)
	assert.Contains(t, out, "broken.yaml")
	assert.Contains(t, out, "colour-picker")
}

func TestLintJSON(t *testing.T) {
	out, err := executeCommand(newRootCmd(), "lint", "--json", studentForm)
	require.NoError(t, err)

	var reports []lintReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Valid)
	assert.Equal(t, studentForm, reports[0].File)
}

func TestLintOverlay(t *testing.T) {
	overlay := writeFile(t, "overlay.yaml", `
forms:
  form-001:
    fields:
      firstName:
        label: Given name
      nickname:
        label: Nickname
`)
	out, err := executeCommand(newRootCmd(), "lint", "--overlay", overlay, studentForm)
	require.True(t, errors.Is(err, errLintFailed), "got %v", err)
	assert.Contains(t, out, `overlay -> field "nickname" not in form`)
}

func TestBackendsApplyOverlay(t *testing.T) {
	overlay := writeFile(t, "overlay.json", `{"forms":{"*":{"title":"Renamed"}}}`)
	cfg := config.Default()
	cfg.Schema.File = studentForm
	cfg.Schema.Overlay = overlay

	fetcher, _, err := backends(cfg)
	require.NoError(t, err)

	form, err := fetcher.Fetch(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", form.Title)
	assert.Equal(t, "Personal Information", form.Sections[0].Title)
}

func TestLintRequiresFiles(t *testing.T) {
	_, err := executeCommand(newRootCmd(), "lint")
	assert.Error(t, err)
}

func TestFillRequiresRoll(t *testing.T) {
	_, err := executeCommand(newRootCmd(), "fill")
	assert.ErrorContains(t, err, "roll")
}

func TestIsTerminalRejectsPipes(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	assert.False(t, isTerminal(r.Fd()))
}
