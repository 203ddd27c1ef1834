package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/isocheck/internal/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve isomorphism checks over HTTP",
		Long: `Serve isomorphism checks over HTTP.

Endpoints:
  GET  /healthz
  GET  /v1/algorithms
  POST /v1/check   {"graph1": G, "graph2": G, "algorithm": "canonical", "witness": true}
  POST /v1/canon   {"graph": G}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.New(runner, loggerFromContext(ctx), c.Config.Timeout.Std())
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
