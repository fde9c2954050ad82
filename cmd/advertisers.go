package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// advertisersCmd lists the advertisers the account can report on
var advertisersCmd = &cobra.Command{
	Use:   "advertisers",
	Short: "List advertisers available to the account",
	RunE:  runAdvertisers,
}

// whoamiCmd shows the authenticated account
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show details of the authenticated account",
	RunE:  runWhoami,
}

// campaignsCmd lists an advertiser's campaigns
var campaignsCmd = &cobra.Command{
	Use:   "campaigns <advertiser-hash>",
	Short: "List an advertiser's campaigns",
	Args:  cobra.ExactArgs(1),
	RunE:  runCampaigns,
}

func init() {
	rootCmd.AddCommand(advertisersCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(campaignsCmd)
}

func runAdvertisers(cmd *cobra.Command, args []string) error {
	advertisers, err := client.GetAdvertisers(cmd.Context())
	if err != nil {
		return err
	}

	if len(advertisers) == 0 {
		fmt.Println("No advertisers found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HASH\tNAME\tSTATUS\tCURRENCY\tURL")
	for _, adv := range advertisers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", adv.Hash, adv.Name, adv.Status, adv.Currency, adv.URL)
	}
	return w.Flush()
}

func runWhoami(cmd *cobra.Command, args []string) error {
	info, err := client.GetUserInfo(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Login: %s\n", info.Login)
	fmt.Printf("Email: %s\n", info.Email)
	fmt.Printf("Hash:  %s\n", info.HashID)
	if len(info.Permissions) > 0 {
		fmt.Printf("Permissions: %s\n", strings.Join(info.Permissions, ", "))
	}
	return nil
}

func runCampaigns(cmd *cobra.Command, args []string) error {
	campaigns, err := client.GetAdvertiserCampaigns(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(campaigns) == 0 {
		fmt.Println("No campaigns found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HASH\tNAME\tSTATUS\tCREATIVES")
	for _, camp := range campaigns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", camp.Hash, camp.Name, camp.Status, len(camp.CreativeIDs))
	}
	return w.Flush()
}
