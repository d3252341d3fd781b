// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "errors"

var (
	// ErrUserQuit is returned when the user cancels a prompt or the chooser.
	ErrUserQuit = errors.New("cancelled by user")

	// ErrNothingToChoose is returned by Choose for an empty list.
	ErrNothingToChoose = errors.New("no entries to choose from")
)
