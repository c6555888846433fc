// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCSV creates a 40-row file with an identifier, a numeric column of 25
// distinct values and a label column.
func writeCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("id,amount,label\n")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "%d,%d,%s\n", i, i%25, []string{"red", "green", "blue"}[i%3])
	}
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// resetFlags returns every flag to its default so executions do not leak
// into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the command tree with an isolated config and state directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	resetFlags(rootCmd)
	t.Cleanup(func() { _ = teardown() })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if !slices.Contains(args, "--config") {
		args = append(args, "--config", filepath.Join(dir, "config.yaml"))
	}
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSchemaCommand(t *testing.T) {
	path := writeCSV(t)
	out, err := execute(t, "schema", path)
	require.NoError(t, err)

	assert.Contains(t, out, "(3 columns)")
	assert.Regexp(t, `id\s+integer`, out)
	assert.Regexp(t, `amount\s+integer`, out)
	assert.Regexp(t, `label\s+string`, out)
}

func TestMetaCommand(t *testing.T) {
	out, err := execute(t, "meta", writeCSV(t))
	require.NoError(t, err)

	assert.Contains(t, out, "File Information")
	assert.Contains(t, out, "Data Structure")
	assert.Contains(t, out, "Column Types Summary")
}

func TestHeadCommand(t *testing.T) {
	out, err := execute(t, "head", writeCSV(t), "-n", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, rule and two rows")
	assert.Regexp(t, `^id\s+amount\s+label$`, lines[0])
	assert.Regexp(t, `^0\s+0\s+red$`, lines[2])
	assert.Regexp(t, `^1\s+1\s+green$`, lines[3])
}

func TestHeadReportsTruncation(t *testing.T) {
	out, err := execute(t, "head", writeCSV(t), "-n", "1", "--max-rows", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "(loaded 5 of 40 rows)")
}

func TestStatsAllColumnsInSchemaOrder(t *testing.T) {
	out, err := execute(t, "stats", writeCSV(t))
	require.NoError(t, err)

	id := strings.Index(out, "Column: `id`")
	amount := strings.Index(out, "Column: `amount`")
	label := strings.Index(out, "Column: `label`")
	require.True(t, id >= 0 && amount >= 0 && label >= 0, out)
	assert.Less(t, id, amount)
	assert.Less(t, amount, label)

	assert.Contains(t, out, "Distribution:")
	assert.Contains(t, out, "Top Values")
}

func TestStatsUnknownColumnFails(t *testing.T) {
	out, err := execute(t, "stats", writeCSV(t), "amount", "nope")
	require.ErrorIs(t, err, errReported)

	assert.Contains(t, out, "Column: `amount`")
	assert.Contains(t, out, "Column 'nope' not found.")
}

func TestStatsMissingFile(t *testing.T) {
	_, err := execute(t, "stats", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestHistCommand(t *testing.T) {
	out, err := execute(t, "hist", writeCSV(t), "amount", "--width", "50", "--height", "4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, four bar rows, baseline, axis labels, summary
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "amount")
	for _, l := range lines[:7] {
		assert.Equal(t, 50, runewidth.StringWidth(l), "line %q", l)
	}
	assert.Equal(t, "40 values, 25 distinct", lines[7])
}

func TestHistSuppressedColumn(t *testing.T) {
	out, err := execute(t, "hist", writeCSV(t), "id")
	require.NoError(t, err)
	assert.Contains(t, out, "nearly all unique")
}

func TestHistRejectsNonNumeric(t *testing.T) {
	_, err := execute(t, "hist", writeCSV(t), "label")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numeric")
}

func TestHistRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "hist", writeCSV(t), "amount", "--bins", "0")
	require.Error(t, err)
}

func TestInvalidMaxRowsOverride(t *testing.T) {
	_, err := execute(t, "schema", writeCSV(t), "--max-rows", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_rows")
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parqv", "config.yaml")

	out, err := execute(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist")
	assert.Contains(t, out, "preview_rows: 50")

	_, err = execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--force", "--config", path)
	require.NoError(t, err)
}

func TestConfigShowRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_rows: -1\n"), 0o644))

	_, err := execute(t, "config", "show", "--config", path)
	require.Error(t, err)
}

func TestProfileColumnsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := profileColumns(ctx, nil, []string{"a", "b"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMatchColumns(t *testing.T) {
	names := []string{"amount", "age", "label"}
	assert.Equal(t, []string{"amount", "age"}, matchColumns(names, nil, "a"))
	assert.Equal(t, []string{"age"}, matchColumns(names, []string{"amount"}, "a"))
	assert.Empty(t, matchColumns(names, nil, "z"))
}

func TestColumnCompletion(t *testing.T) {
	path := writeCSV(t)

	got, directive := columnCompletionFunc(statsCmd, []string{path, "id"}, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.Equal(t, []string{"amount", "label"}, got)

	got, _ = columnCompletionFunc(histCmd, []string{path, "amount"}, "")
	assert.Empty(t, got)

	exts, directive := columnCompletionFunc(statsCmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)
	assert.Contains(t, exts, "csv")
	assert.Contains(t, exts, "sqlite")
}
