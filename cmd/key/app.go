// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/service"
	"github.com/MKhiriev/go-key/internal/tui"
)

// app carries what every command needs once the root pre-run has loaded
// the configuration.
type app struct {
	flags  *config.StructuredConfig
	cfg    *config.StructuredConfig
	logger *logger.Logger

	ui        *tui.TUI
	fs        afero.Fs
	clipboard func(string) error
}

func newApp(in io.Reader, uiOut io.Writer) *app {
	return &app{
		logger:    logger.Nop(),
		ui:        tui.New(in, uiOut),
		fs:        afero.NewOsFs(),
		clipboard: clipboard.WriteAll,
	}
}

// open parses the configured URL, gathers credentials and loads the vault.
// The caller closes the returned handle.
func (a *app) open(ctx context.Context) (*service.Handle, error) {
	if err := a.cfg.RequireVault(); err != nil {
		return nil, err
	}

	loc, err := locator.Parse(a.cfg.Vault.DatabaseURL)
	if err != nil {
		return nil, err
	}

	creds, err := a.credentials(ctx, loc)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().Str("location", loc.String()).Msg("opening vault")
	return service.NewServices(a.cfg.Storage, a.logger).Open(ctx, loc, creds)
}

// credentials reads the key file and takes the password from the config.
// Without either the user is prompted for a password.
func (a *app) credentials(ctx context.Context, loc locator.Location) (codec.Credentials, error) {
	var creds codec.Credentials

	if path := a.cfg.Vault.Keyfile; path != "" {
		data, err := afero.ReadFile(a.fs, path)
		if err != nil {
			return creds, fmt.Errorf("read key file: %w", err)
		}
		creds.Keyfile = data
	}

	switch {
	case a.cfg.Vault.Password != "":
		password := a.cfg.Vault.Password
		creds.Password = &password
	case creds.Keyfile == nil:
		password, err := a.ui.PromptPassword(ctx, fmt.Sprintf("Password for %s:", loc.CacheName()))
		if err != nil {
			return creds, err
		}
		creds.Password = &password
	}

	return creds, nil
}

// output prints value on stdout, or copies it when toClipboard is set.
func (a *app) output(cmd *cobra.Command, value, what string, toClipboard bool) error {
	if !toClipboard {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), value)
		return err
	}

	if err := a.clipboard(value); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s copied to clipboard\n", what)
	return nil
}

// withHandle opens the vault, runs fn and closes the vault.
func (a *app) withHandle(cmd *cobra.Command, fn func(h *service.Handle) error) error {
	h, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer h.Close()

	return fn(h)
}
