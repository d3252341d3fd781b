package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/logger"
)

const description = `Command line interface to a local or remote KeePass database.

The database is given as a URL:
  file:///path/to/main.kdbx
  s3://s3.example.com/bucket/path/main.kdbx     (s3+http:// for plain http)
  https://dav.example.com/vaults/main.kdbx

Environment variables (prefix KEY_):
  KEY_DATABASE_URL   database URL
  KEY_KEYFILE        path to the key file
  KEY_PASSWORD       master password; prompted for when unset
  KEY_S3_ACCESS_KEY, KEY_S3_SECRET_KEY, KEY_S3_REGION
  KEY_HTTP_USERNAME, KEY_HTTP_PASSWORD, KEY_HTTP_TIMEOUT
  KEY_CACHE_DIR      fallback cache for remote databases (default ~/.key/cache)
  KEY_LOG            log level
  KEY_CONFIG         JSON config file`

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "key",
		Short:         "Read and edit a local or remote KeePass database",
		Long:          description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.flags)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger.New(cmd.ErrOrStderr(), "cli", cfg.LogLevel)
			return nil
		},
	}

	a.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newDeleteCmd(a),
		newRenameCmd(a),
		newOTPCmd(a),
		newGenCmd(a),
		newChooseCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return root
}
