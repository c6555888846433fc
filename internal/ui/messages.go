// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's messages.go file defines the message types used in the Bubble Tea
// Model-View-Update architecture.

package ui

import (
	"parqv/internal/profile"
	"parqv/internal/source"
)

// sourceLoadedMsg is sent once the file has been read, or failed to.
type sourceLoadedMsg struct {
	src *source.Source
	err error
}

// statsComputedMsg carries the statistics of one column. It is dropped when
// the selection has moved to another column in the meantime.
type statsComputedMsg struct {
	column string
	result profile.Result
}
