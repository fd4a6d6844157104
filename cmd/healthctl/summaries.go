package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	summaryCmd := &cobra.Command{Use: "summary", Short: "AI summary operations"}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new AI health summary for the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/ai/summary", apiFlag), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	summaryCmd.AddCommand(generateCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the authenticated user's summary history (oldest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			data, err := doGetJSON(fmt.Sprintf("%s/api/ai/summaries", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	summaryCmd.AddCommand(listCmd)

	rootCmd.AddCommand(summaryCmd)
}
