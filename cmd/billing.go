package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	billingFrom string
	billingTo   string
)

// billingCmd shows the advertiser's billing ledger
var billingCmd = &cobra.Command{
	Use:   "billing <advertiser-hash>",
	Short: "Show the billing ledger for an advertiser",
	Args:  cobra.ExactArgs(1),
	RunE:  runBilling,
}

func init() {
	rootCmd.AddCommand(billingCmd)

	billingCmd.Flags().StringVar(&billingFrom, "from", "", "start day (yyyy-mm-dd)")
	billingCmd.Flags().StringVar(&billingTo, "to", "", "end day (yyyy-mm-dd)")

	billingCmd.MarkFlagRequired("from")
	billingCmd.MarkFlagRequired("to")
}

func runBilling(cmd *cobra.Command, args []string) error {
	dayFrom, err := parseDayFlag("from", billingFrom)
	if err != nil {
		return err
	}
	dayTo, err := parseDayFlag("to", billingTo)
	if err != nil {
		return err
	}

	billing, err := client.GetBilling(cmd.Context(), args[0], dayFrom, dayTo)
	if err != nil {
		return err
	}

	fmt.Printf("Initial balance: %.2f\n", billing.InitialBalance)
	if len(billing.Bills) == 0 {
		fmt.Println("No billing records.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDAY\tOPERATION\tCREDIT\tDEBIT\tBALANCE")
	for _, bill := range billing.Bills {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
			bill.RecordNumber,
			bill.Day.Time().Format("2006-01-02"),
			bill.Operation,
			bill.Credit,
			bill.Debit,
			bill.Balance)
	}
	return w.Flush()
}
