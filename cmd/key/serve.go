package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-key/internal/config"
	httphandler "github.com/MKhiriev/go-key/internal/handler/http"
	"github.com/MKhiriev/go-key/internal/server"
	"github.com/MKhiriev/go-key/internal/service"
	"github.com/MKhiriev/go-key/internal/utils"
)

const defaultTokenSubject = "key-client"

func newServeCmd(a *app) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the database over a local HTTP API",
		Long: `Serve the database over a local HTTP API for GUI shells.

A bearer token for the API is printed on stdout at start. The database is
re-read from its backend every --reload-interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.RequireServer(); err != nil {
				return err
			}
			srvCfg := a.cfg.Server

			return a.withHandle(cmd, func(h *service.Handle) error {
				token, err := utils.GenerateJWTToken(srvCfg.TokenIssuer, subject, srvCfg.TokenDuration, srvCfg.TokenSignKey)
				if err != nil {
					return err
				}

				router := httphandler.NewHandler(h, srvCfg, buildVersion, a.logger).Init()
				srv, err := server.NewServer(router, service.NewReloadJob(h, a.logger), srvCfg, a.logger)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), token.SignedString)
				return srv.Run(cmd.Context())
			})
		},
	}

	config.BindServerFlags(cmd.Flags(), a.flags)
	cmd.Flags().StringVar(&subject, "subject", defaultTokenSubject, "subject of the printed bearer token")
	return cmd
}
