package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	recordCmd := &cobra.Command{Use: "record", Short: "Health record operations"}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the authenticated user's full health record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			data, err := doGetJSON(fmt.Sprintf("%s/api/health/profile", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	recordCmd.AddCommand(profileCmd)

	var heartRate, systolic, diastolic int
	var notes string
	vitalCmd := &cobra.Command{
		Use:   "add-vital",
		Short: "Append a vital-signs reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			payload := map[string]interface{}{}
			if heartRate > 0 {
				payload["heartRate"] = heartRate
			}
			if systolic > 0 {
				payload["systolic"] = systolic
			}
			if diastolic > 0 {
				payload["diastolic"] = diastolic
			}
			if notes != "" {
				payload["notes"] = notes
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/health/vitals", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	vitalCmd.Flags().IntVar(&heartRate, "heart-rate", 0, "Heart rate (bpm)")
	vitalCmd.Flags().IntVar(&systolic, "systolic", 0, "Systolic blood pressure")
	vitalCmd.Flags().IntVar(&diastolic, "diastolic", 0, "Diastolic blood pressure")
	vitalCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	recordCmd.AddCommand(vitalCmd)

	rootCmd.AddCommand(recordCmd)
}
