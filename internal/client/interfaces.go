// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Client is the lifecycle contract of the command line application.
type Client interface {
	// Run executes the command in args and blocks until it is done. An
	// interactive login keeps running until the user logs out.
	Run(ctx context.Context, args []string) error
}

// UI runs bubbletea models.
type UI interface {
	// Run blocks until model quits or ctx is done and returns the final
	// model. fullScreen asks for the alternate screen buffer.
	Run(ctx context.Context, model tea.Model, fullScreen bool) (tea.Model, error)
}

// Clipboard receives copied passwords.
type Clipboard interface {
	WriteAll(text string) error
}
