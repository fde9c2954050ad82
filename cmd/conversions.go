package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rtbhouse-apps/rtbhouse-go-sdk/rtbhouse"
)

var (
	convFrom       string
	convTo         string
	convConvention string
	convLimit      int
	convCountOnly  bool
)

// conversionsCmd streams conversion records over a date range
var conversionsCmd = &cobra.Command{
	Use:   "conversions <advertiser-hash>",
	Short: "Stream conversions for an advertiser",
	Long: `Stream conversion records over a date range. The API paginates with a
cursor; records are printed as pages arrive.`,
	Args: cobra.ExactArgs(1),
	RunE: runConversions,
}

func init() {
	rootCmd.AddCommand(conversionsCmd)

	conversionsCmd.Flags().StringVar(&convFrom, "from", "", "start day (yyyy-mm-dd)")
	conversionsCmd.Flags().StringVar(&convTo, "to", "", "end day (yyyy-mm-dd)")
	conversionsCmd.Flags().StringVar(&convConvention, "count-convention", "", "conversion count convention")
	conversionsCmd.Flags().IntVar(&convLimit, "page-size", 0, "cursor page size (default 10000)")
	conversionsCmd.Flags().BoolVar(&convCountOnly, "count", false, "print only the number of conversions")

	conversionsCmd.MarkFlagRequired("from")
	conversionsCmd.MarkFlagRequired("to")
}

func runConversions(cmd *cobra.Command, args []string) error {
	dayFrom, err := parseDayFlag("from", convFrom)
	if err != nil {
		return err
	}
	dayTo, err := parseDayFlag("to", convTo)
	if err != nil {
		return err
	}

	params := rtbhouse.ConversionsParams{
		DayFrom: dayFrom,
		DayTo:   dayTo,
		Limit:   convLimit,
	}
	if convConvention != "" {
		params.CountConvention = rtbhouse.CountConvention(convConvention)
	}

	ctx := cmd.Context()
	it, err := client.GetRTBConversions(ctx, args[0], params)
	if err != nil {
		return err
	}
	defer it.Close()

	var w *tabwriter.Writer
	if !convCountOnly {
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tIDENTIFIER\tVALUE\tCOMMISSION")
	}

	count := 0
	for it.Next(ctx) {
		count++
		if convCountOnly {
			continue
		}
		conv := it.Record()
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\n",
			conv.ConversionTime.Format("2006-01-02 15:04:05"),
			conv.ConversionIdentifier,
			conv.ConversionValue.Or(0),
			conv.CommissionValue.Or(0))
	}
	if err := it.Err(); err != nil {
		return err
	}

	if w != nil {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	fmt.Printf("%d conversions\n", count)
	return nil
}
