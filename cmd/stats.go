package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rtbhouse-apps/rtbhouse-go-sdk/filter"
	"github.com/rtbhouse-apps/rtbhouse-go-sdk/rtbhouse"
)

var (
	statsFrom       string
	statsTo         string
	statsGroupBy    []string
	statsMetrics    []string
	statsConvention string
	statsSummary    bool
	filterExpr      string
	preset          string
)

// statsCmd pulls an aggregated statistics report
var statsCmd = &cobra.Command{
	Use:   "stats <advertiser-hash>",
	Short: "Fetch RTB or summary statistics for an advertiser",
	Long: `Fetch an aggregated statistics report. Rows can be narrowed further
with a client-side filter expression, e.g.:

  rtbcli stats HASH --from 2026-08-01 --to 2026-08-28 \
      --group-by day --metrics impsCount,clicksCount \
      --filter 'clicksCount > 100'`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsFrom, "from", "", "start day (yyyy-mm-dd)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "end day (yyyy-mm-dd)")
	statsCmd.Flags().StringSliceVar(&statsGroupBy, "group-by", []string{"day"}, "group-by dimensions")
	statsCmd.Flags().StringSliceVar(&statsMetrics, "metrics", []string{"impsCount", "clicksCount"}, "metrics to report")
	statsCmd.Flags().StringVar(&statsConvention, "count-convention", "", "conversion count convention")
	statsCmd.Flags().BoolVar(&statsSummary, "summary", false, "use the summary-stats endpoint")
	statsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to result rows")
	statsCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")

	statsCmd.MarkFlagRequired("from")
	statsCmd.MarkFlagRequired("to")
}

func runStats(cmd *cobra.Command, args []string) error {
	params, err := buildStatsParams()
	if err != nil {
		return err
	}

	rowFilter, err := getRowFilter()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var rows []rtbhouse.Stats
	if statsSummary {
		rows, err = client.GetSummaryStats(ctx, args[0], params)
	} else {
		rows, err = client.GetRTBStats(ctx, args[0], params)
	}
	if err != nil {
		return err
	}

	if rowFilter != nil {
		logger.Debug().Str("filter", rowFilter.Expression()).Msg("applying row filter")
		rows, err = rowFilter.Apply(rows)
		if err != nil {
			return err
		}
	}

	if len(rows) == 0 {
		fmt.Println("No rows.")
		return nil
	}
	return printStats(rows, params)
}

func buildStatsParams() (rtbhouse.StatsParams, error) {
	dayFrom, err := parseDayFlag("from", statsFrom)
	if err != nil {
		return rtbhouse.StatsParams{}, err
	}
	dayTo, err := parseDayFlag("to", statsTo)
	if err != nil {
		return rtbhouse.StatsParams{}, err
	}

	params := rtbhouse.StatsParams{DayFrom: dayFrom, DayTo: dayTo}
	for _, g := range statsGroupBy {
		params.GroupBy = append(params.GroupBy, rtbhouse.GroupBy(g))
	}
	for _, m := range statsMetrics {
		params.Metrics = append(params.Metrics, rtbhouse.Metric(m))
	}
	if statsConvention != "" {
		convention := rtbhouse.CountConvention(statsConvention)
		params.CountConvention = &convention
	}
	return params, nil
}

func getRowFilter() (*filter.Filter, error) {
	expression := filterExpr
	if preset != "" {
		if expression != "" {
			return nil, fmt.Errorf("--filter and --preset are mutually exclusive")
		}
		var ok bool
		expression, ok = cfg.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	}
	if expression == "" {
		return nil, nil
	}

	compiled, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return compiled, nil
}

func printStats(rows []rtbhouse.Stats, params rtbhouse.StatsParams) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	header := make([]string, 0, len(params.GroupBy)+len(params.Metrics))
	for _, g := range params.GroupBy {
		header = append(header, strings.ToUpper(string(g)))
	}
	for _, m := range params.Metrics {
		header = append(header, strings.ToUpper(string(m)))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range rows {
		env := filter.StatsEnv(row)
		cells := make([]string, 0, len(header))
		for _, g := range params.GroupBy {
			cells = append(cells, formatCell(env[string(g)]))
		}
		for _, m := range params.Metrics {
			cells = append(cells, formatCell(env[string(m)]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case float64:
		return fmt.Sprintf("%.2f", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
