package cli

import (
	"github.com/spf13/cobra"

	"github.com/cortesys/cutplan/internal/catalog"
	"github.com/cortesys/cutplan/internal/server"
)

// newServeCmd creates the serve command for the HTTP API.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimizer over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store := catalog.NewStore(cfg.DataDir)
			loggerFromContext(cmd.Context()).Info("starting HTTP API", "addr", cfg.Server.Addr, "data", cfg.DataDir)
			return server.New(store, cfg).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
