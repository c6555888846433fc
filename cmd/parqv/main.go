// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package main

import "parqv/cmd/cli"

func main() {
	// A bare file argument opens the TUI; subcommands print to stdout.
	cli.RunCLI()
}
