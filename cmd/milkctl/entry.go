package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shashankyadav00/milk-attendance-system/internal/export"
	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

var (
	entryCustomer string
	entryLitres   float64
	entrySteps    []float64
	entryRate     float64
	entryDate     string
	entryID       int64
	entryYes      bool
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Record and inspect daily delivery entries",
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List delivery entries of the selected shift",
	RunE:  runEntryList,
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one delivery",
	Long: `Records a delivery for one customer. Litres can be given directly with
--litres or accumulated through the quick-add steps (0.25, 0.5, 0.75, 1, 2)
with a repeatable --add flag. When --rate is omitted the customer's
configured price per litre applies. The amount is computed here, at submit
time, as litres times rate.`,
	RunE: runEntryAdd,
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one delivery entry",
	RunE:  runEntryDelete,
}

func init() {
	entryAddCmd.Flags().StringVar(&entryCustomer, "customer", "", "customer id or name (required)")
	entryAddCmd.Flags().Float64Var(&entryLitres, "litres", 0, "litres delivered")
	entryAddCmd.Flags().Float64SliceVar(&entrySteps, "add", nil, "quick-add step, repeatable (0.25, 0.5, 0.75, 1 or 2)")
	entryAddCmd.Flags().Float64Var(&entryRate, "rate", 0, "price per litre (default: customer's configured price)")
	entryAddCmd.Flags().StringVar(&entryDate, "date", "", "delivery date YYYY-MM-DD (default: today)")
	entryAddCmd.MarkFlagRequired("customer")
	entryAddCmd.MarkFlagsMutuallyExclusive("litres", "add")

	entryDeleteCmd.Flags().Int64Var(&entryID, "id", 0, "entry id (required)")
	entryDeleteCmd.Flags().BoolVar(&entryYes, "yes", false, "skip the confirmation prompt")
	entryDeleteCmd.MarkFlagRequired("id")

	entryCmd.AddCommand(entryListCmd, entryAddCmd, entryDeleteCmd)
	rootCmd.AddCommand(entryCmd)
}

func runEntryList(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.client.ListEntries(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No entries for the %s shift\n", a.shift)
		return nil
	}

	fmt.Printf("\nEntries (%s):\n", a.shift)
	fmt.Println("------------------------------------------------------------------")
	fmt.Printf("%-5s  %-12s  %-20s  %8s  %8s  %12s\n", "ID", "Date", "Customer", "Litres", "Rate", "Amount")
	fmt.Println("------------------------------------------------------------------")

	var totalLitres, totalAmount float64
	for _, e := range entries {
		fmt.Printf("%-5d  %-12s  %-20s  %8.2f  %8.2f  %12s\n",
			e.ID, e.Date, e.CustomerName, e.Litres, e.Rate, export.Money(e.Amount))
		totalLitres += e.Litres
		totalAmount += e.Amount
	}

	fmt.Println("------------------------------------------------------------------")
	fmt.Printf("Total: %.2f L, %s (%d entries)\n", totalLitres, export.Money(totalAmount), len(entries))
	return nil
}

// isQuickStep reports whether v is one of the fixed picker increments
func isQuickStep(v float64) bool {
	for _, step := range models.QuickAddSteps {
		if v == step {
			return true
		}
	}
	return false
}

func runEntryAdd(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	customer, err := a.client.FindCustomer(cmd.Context(), a.shift, entryCustomer)
	if err != nil {
		return err
	}

	litres := entryLitres
	if !cmd.Flags().Changed("litres") {
		for _, step := range entrySteps {
			if !isQuickStep(step) {
				return fmt.Errorf("invalid quick-add step %v (available: %v)", step, models.QuickAddSteps)
			}
			litres = models.AddLitres(litres, step)
		}
	}

	rate := entryRate
	if !cmd.Flags().Changed("rate") {
		rate = customer.Rate()
	}

	date := entryDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", entryDate)
	}

	if _, err := a.client.CreateEntry(cmd.Context(), models.Entry{
		CustomerName: customer.DisplayName(),
		Shift:        a.shift,
		Date:         date,
		Litres:       litres,
		Rate:         rate,
	}); err != nil {
		return err
	}

	fmt.Printf("✓ Recorded %.2f L × %s = %s for %s on %s\n",
		litres, export.Money(rate), export.Money(models.Amount(litres, rate)),
		customer.DisplayName(), date)
	return nil
}

func runEntryDelete(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if !entryYes && !confirm("Delete this entry?") {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.client.DeleteEntry(cmd.Context(), entryID); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	fmt.Printf("✓ Deleted entry %d\n", entryID)
	return nil
}
