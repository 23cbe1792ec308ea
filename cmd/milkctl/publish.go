package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shashankyadav00/milk-attendance-system/internal/publisher"
)

var (
	publishMonth int
	publishYear  int
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish monthly delivery totals to MQTT",
	Long: `Fetches the month matrix and publishes each customer's litre and amount
totals to the configured MQTT broker, one retained message per customer.`,
	RunE: runPublish,
}

func init() {
	now := time.Now()
	publishCmd.Flags().IntVar(&publishMonth, "month", int(now.Month()), "month 1-12")
	publishCmd.Flags().IntVar(&publishYear, "year", now.Year(), "year")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	pub, err := publisher.New(a.cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	ov, err := a.client.GetOverview(cmd.Context(), a.shift, publishMonth, publishYear)
	if err != nil {
		return fmt.Errorf("loading overview: %w", err)
	}

	if len(ov.Customers) == 0 {
		fmt.Printf("No customers in the %s shift for %d-%02d\n", a.shift, publishYear, publishMonth)
		return nil
	}

	published := 0
	for i, c := range ov.Customers {
		fmt.Printf("[%d/%d] Publishing %s... ", i+1, len(ov.Customers), c.DisplayName())

		err := pub.Publish(publisher.CustomerTotal{
			CustomerID:   c.ID,
			CustomerName: c.DisplayName(),
			Shift:        a.shift,
			Year:         ov.Year,
			Month:        ov.Month,
			Litres:       ov.TotalLitresPerCustomer[c.ID],
			Amount:       ov.TotalAmountPerCustomer[c.ID],
		})
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			continue
		}

		fmt.Printf("✓\n")
		published++
	}

	fmt.Printf("\nPublished %d/%d customer totals\n", published, len(ov.Customers))
	return nil
}
