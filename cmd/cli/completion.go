// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"slices"
	"strings"

	"parqv/internal/logger"
	"parqv/internal/source"

	"github.com/spf13/cobra"
)

// completionRows is how many rows completion loads; only names are needed.
const completionRows = 1

// fileCompletion restricts file suggestions to supported extensions.
func fileCompletion() ([]string, cobra.ShellCompDirective) {
	exts := source.Extensions()
	for i, e := range exts {
		exts[i] = strings.TrimPrefix(e, ".")
	}
	return exts, cobra.ShellCompDirectiveFilterFileExt
}

// fileArgCompletion completes the single file argument of a command.
func fileArgCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return fileCompletion()
}

// columnCompletionFunc completes a file first, then column names from it.
// hist takes one column; stats takes any number of distinct ones.
func columnCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return fileCompletion()
	}
	if cmd.Name() == "hist" && len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	names, err := columnNames(ctx, args[0])
	if err != nil {
		// Errors are not shown during completion
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return matchColumns(names, args[1:], toComplete), cobra.ShellCompDirectiveNoFileComp
}

func columnNames(ctx context.Context, path string) ([]string, error) {
	opts := sourceOptions()
	opts.MaxRows = completionRows
	src, err := source.Open(ctx, path, opts, logger.Discard())
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Columns(), nil
}

// matchColumns filters names by prefix, skipping names already given.
func matchColumns(names, given []string, prefix string) []string {
	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) && !slices.Contains(given, n) {
			out = append(out, n)
		}
	}
	return out
}
