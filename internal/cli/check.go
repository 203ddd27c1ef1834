package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isocheck/pkg/graph"
	"github.com/matzehuels/isocheck/pkg/pipeline"
)

var errPickerAborted = errors.New("no algorithm selected")

// checkOptions holds the flags of the check command.
type checkOptions struct {
	algorithm   string
	interactive bool
	timeout     time.Duration
	witness     bool
	jsonOut     bool
	noCache     bool
	refresh     bool
}

// checkReport is the --json output of the check command.
type checkReport struct {
	ID          string                        `json:"id"`
	Algorithm   string                        `json:"algorithm"`
	Matched     bool                          `json:"matched"`
	Heuristic   bool                          `json:"heuristic"`
	Prefiltered bool                          `json:"prefiltered"`
	ElapsedMS   float64                       `json:"elapsed_ms"`
	Graph1      graphStats                    `json:"graph1"`
	Graph2      graphStats                    `json:"graph2"`
	Witness     map[graph.NodeID]graph.NodeID `json:"witness,omitempty"`
}

type graphStats struct {
	Path   string `json:"path"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
	Cached bool   `json:"cached"`
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	opts := checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <graph1.json> <graph2.json>",
		Short: "Decide whether two graphs are isomorphic",
		Long: `Decide whether two graphs are isomorphic.

Both files use the JSON graph format:
  {"nodes": [{"id": 1, "label": "a"}], "edges": [{"source": 1, "target": 2}]}

Engines:
  canonical         exact, compares canonical certificates (default)
  color-refinement  fast; a positive answer is only a heuristic
  backtracking      exact, searches for a node mapping directly

Examples:
  isocheck check a.json b.json
  isocheck check a.json b.json -a backtracking --witness
  isocheck check a.json b.json -i`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("algorithm") {
				opts.algorithm = c.Config.Algorithm
			}
			if !cmd.Flags().Changed("timeout") {
				opts.timeout = c.Config.Timeout.Std()
			}
			if opts.interactive {
				name, err := pickAlgorithm(opts.algorithm)
				if err != nil {
					return err
				}
				opts.algorithm = name
			}
			return c.runCheck(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "engine name or alias (see 'isocheck algorithms')")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the algorithm interactively")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", pipeline.DefaultTimeout, "give up after this long")
	cmd.Flags().BoolVar(&opts.witness, "witness", false, "print the node mapping of a positive verdict")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, path1, path2 string, opts checkOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if !opts.jsonOut {
		spinner = newSpinnerWithContext(ctx, "Checking isomorphism...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, pipeline.Options{
		Graph1Path: path1,
		Graph2Path: path2,
		Algorithm:  opts.algorithm,
		Timeout:    opts.timeout,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if opts.jsonOut {
		report := checkReport{
			ID:          result.ID,
			Algorithm:   result.Algorithm,
			Matched:     result.Matched,
			Heuristic:   result.Heuristic,
			Prefiltered: result.Prefiltered,
			ElapsedMS:   float64(result.Elapsed.Microseconds()) / 1000,
			Graph1:      graphStats{path1, result.Stats.Nodes1, result.Stats.Edges1, result.CacheInfo.Graph1Hit},
			Graph2:      graphStats{path2, result.Stats.Nodes2, result.Stats.Edges2, result.CacheInfo.Graph2Hit},
		}
		if opts.witness {
			report.Witness = result.Witness
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printVerdict(result.Matched, result.Heuristic, result.Prefiltered, result.Algorithm)
	printKeyValue("Graph 1", path1)
	printStats(result.Stats.Nodes1, result.Stats.Edges1, result.CacheInfo.Graph1Hit || result.CacheInfo.VerdictHit)
	printKeyValue("Graph 2", path2)
	printStats(result.Stats.Nodes2, result.Stats.Edges2, result.CacheInfo.Graph2Hit || result.CacheInfo.VerdictHit)
	printKeyValue("Elapsed", result.Elapsed.Round(time.Microsecond).String())

	if opts.witness && result.Witness != nil {
		printNewline()
		printWitness(result.Witness)
	} else if result.Matched && !result.Heuristic && !opts.witness {
		printNewline()
		printNextStep("Show the node mapping", fmt.Sprintf("%s check %s %s --witness", appName, path1, path2))
	}
	return nil
}

// printWitness prints the mapping sorted by source node.
func printWitness(w map[graph.NodeID]graph.NodeID) {
	keys := make([]graph.NodeID, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Println(StyleTitle.Render("Witness"))
	for _, k := range keys {
		fmt.Println("  " + StyleValue.Render(k) + " " + StyleDim.Render(iconArrow) + " " + StyleNumber.Render(w[k]))
	}
}
