// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmap/propmap/internal/document"
)

// executeCommand runs a command and returns output and error.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// resetFlags restores every package flag variable to its default, now and
// after the test.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		cfgFile, output, format, profileName = "", "", "", ""
		verbose, quiet = false, true

		convertShape, convertMerge, convertStrategy, convertDryRun = "", false, "overwrite", false
		convertInclude, convertExclude = nil, nil

		checkStrict, checkIgnore, checkCI = true, nil, false
		diffBreaking = false
		printShape = ""
		reportInput, reportFormat, reportFailOnError = "", "", false
		watchDebounce, watchOnChange, watchShape = 0, "", ""
		initForce, initInteractive, initShape = false, false, ""
	}
	reset()
	t.Cleanup(func() {
		reset()
		quiet = false
	})
}

const subtitleExport = `channel_id: 1
content_types:
  - name: page
    template_id: 5
    fields:
      - id: 3
        machine_name: field_subtitle
        label: Subtitle
        data_kind: text
        widget_kind: text_textfield
        cardinality: 1
`

const sizeFieldExport = `      - id: 4
        machine_name: field_size
        label: Size
        data_kind: list_text
        widget_kind: options_select
        cardinality: 1
        settings:
          allowed_values:
            - key: s
              label: Small
            - key: l
              label: Large
`

// setupProject creates a project directory with one canonical export under
// exports/ and makes it the working directory.
func setupProject(t *testing.T, export string) string {
	t.Helper()
	resetFlags(t)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "exports"), 0o755))
	writeExport(t, dir, export)
	chdir(t, dir)
	return dir
}

func writeExport(t *testing.T, dir, export string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exports", "site.yaml"), []byte(export), 0o644))
}

func TestRootCommand_Help(t *testing.T) {
	resetFlags(t)
	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "propmap")
	assert.Contains(t, output, "CMS field schema to property descriptor converter")
	assert.Contains(t, output, "Available Commands")
	for _, name := range []string{"convert", "init", "check", "diff", "report", "watch", "print", "version"} {
		assert.Contains(t, output, name)
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		expected string
	}{
		{"config flag short", "-c", "config file"},
		{"config flag long", "--config", "config file"},
		{"output flag short", "-o", "output file path"},
		{"output flag long", "--output", "output file path"},
		{"format flag short", "-f", "output format"},
		{"format flag long", "--format", "output format"},
		{"profile flag", "--profile", "CMS profile"},
		{"verbose flag short", "-v", "verbose output"},
		{"verbose flag long", "--verbose", "verbose output"},
		{"quiet flag short", "-q", "suppress"},
		{"quiet flag long", "--quiet", "suppress"},
	}

	resetFlags(t)
	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, output, tt.flag)
			assert.Contains(t, output, tt.expected)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	resetFlags(t)
	output, err := executeCommand(rootCmd, "version")
	require.NoError(t, err)

	assert.Contains(t, output, "propmap")
	assert.Contains(t, output, "Commit")
	assert.Contains(t, output, "Build Date")
	assert.Contains(t, output, "Go Version")
	assert.Contains(t, output, "OS/Arch")
}

func TestCommand_Help(t *testing.T) {
	tests := []struct {
		command  string
		expected []string
	}{
		{"init", []string{"Initialize a new propmap configuration file", "--force", "--interactive", "--shape"}},
		{"convert", []string{"Convert CMS field-schema exports", "--shape", "--merge", "--strategy", "--dry-run", "--include", "--exclude"}},
		{"check", []string{"Check validates that your descriptor file matches the current exports", "--strict", "--ignore", "--ci"}},
		{"diff", []string{"Compare two descriptor documents", "--breaking"}},
		{"report", []string{"List the validation issues", "--input", "--report-format", "--fail-on-error"}},
		{"watch", []string{"Watch for export changes", "--debounce", "--on-change"}},
		{"print", []string{"Print the property descriptors", "--shape"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			resetFlags(t)
			output, err := executeCommand(rootCmd, tt.command, "--help")
			require.NoError(t, err)

			for _, s := range tt.expected {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.Contains(t, info, "propmap")
	assert.Contains(t, info, "commit")
	assert.Contains(t, info, "built")
}

func TestConvertCommand(t *testing.T) {
	dir := setupProject(t, subtitleExport)

	_, err := executeCommand(rootCmd, "convert")
	require.NoError(t, err)

	doc, err := document.ReadFile(filepath.Join(dir, "properties.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "canonical", doc.Profile)
	require.Len(t, doc.ContentTypes, 1)

	var got []string
	for _, p := range doc.ContentTypes[0].Properties {
		got = append(got, p.Name)
	}
	assert.Equal(t, []string{"C_DPF_5_PROMOTE", "C_DPF_5_STICKY", "C_DPF_5_PUBLISH", "C_DPF_5_3_SUBTITLE"}, got)
}

func TestConvertCommand_DryRunJSON(t *testing.T) {
	dir := setupProject(t, subtitleExport)

	out, err := executeCommand(rootCmd, "convert", "--dry-run", "-f", "json", "--shape", "flattened")
	require.NoError(t, err)

	assert.Contains(t, out, `"shape": "flattened"`)
	assert.Contains(t, out, "C_DPF_5_3_SUBTITLE")
	assert.NoFileExists(t, filepath.Join(dir, "properties.yaml"))
}

func TestConvertCommand_Merge(t *testing.T) {
	dir := setupProject(t, subtitleExport+sizeFieldExport)

	_, err := executeCommand(rootCmd, "convert")
	require.NoError(t, err)

	writeExport(t, dir, subtitleExport)
	_, err = executeCommand(rootCmd, "convert", "--merge", "--strategy", "append")
	require.NoError(t, err)

	doc, err := document.ReadFile(filepath.Join(dir, "properties.yaml"))
	require.NoError(t, err)
	require.Len(t, doc.ContentTypes, 1)
	assert.Len(t, doc.ContentTypes[0].Properties, 5, "append keeps the removed field")
}

func TestConvertCommand_InvalidStrategy(t *testing.T) {
	setupProject(t, subtitleExport)

	_, err := executeCommand(rootCmd, "convert", "--merge", "--strategy", "replace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported merge strategy")
}

func TestConvertCommand_NoExports(t *testing.T) {
	resetFlags(t)
	chdir(t, t.TempDir())

	_, err := executeCommand(rootCmd, "convert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no export files found")
}

func TestConvertCommand_InvalidShape(t *testing.T) {
	setupProject(t, subtitleExport)

	_, err := executeCommand(rootCmd, "convert", "--shape", "grid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
