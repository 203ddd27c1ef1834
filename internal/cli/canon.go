package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isocheck/pkg/errors"
	"github.com/matzehuels/isocheck/pkg/graph"
	isoio "github.com/matzehuels/isocheck/pkg/io"
)

// canonCommand creates the canon command.
func (c *CLI) canonCommand() *cobra.Command {
	var (
		jsonOut bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "canon <graph.json>",
		Short: "Print the canonical certificate of a graph",
		Long: `Print the canonical certificate hash and canonical node order of a graph.

Two graphs are isomorphic exactly when their hashes are equal, so hashes can
be stored and compared later without rerunning the search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if err := errors.ValidateGraphPath(args[0]); err != nil {
				return err
			}
			g, err := isoio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx, cancel := context.WithTimeout(ctx, c.Config.Timeout.Std())
			defer cancel()

			prog := newProgress(logger)
			canon, cached, err := runner.Canonical(ctx, g, refresh)
			if err != nil {
				return errors.FromContext(err, "canonicalize %s", args[0])
			}
			prog.done(fmt.Sprintf("Canonicalized %d nodes", g.NodeCount()))

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Hash   string         `json:"hash"`
					Order  []graph.NodeID `json:"order"`
					Cached bool           `json:"cached"`
				}{canon.Certificate.Hash(), canon.Order, cached})
			}

			printKeyValue("Graph", args[0])
			printStats(g.NodeCount(), g.EdgeCount(), cached)
			printKeyValue("Hash", StyleHighlight.Render(canon.Certificate.Hash()))
			printKeyValue("Order", strings.Join(canon.Order, " "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}
