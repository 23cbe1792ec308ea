package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Shashankyadav00/milk-attendance-system/internal/export"
	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

var (
	overviewMonth    int
	overviewYear     int
	overviewDay      int
	overviewCustomer string
	overviewStep     float64
	overviewReset    bool
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Render the month × customer delivery grid",
	Long: `Fetches the precomputed delivery matrix for one month and shift and
renders it with per-customer totals and today's payment status. Cell edits go
through 'overview quick-add'; every edit is followed by a full re-fetch, so
the grid always reflects server-confirmed state.`,
	RunE: runOverview,
}

var overviewQuickAddCmd = &cobra.Command{
	Use:   "quick-add",
	Short: "Edit one cell of the grid",
	Long: `Captures the existing litres of the (day, customer) cell as a baseline,
accumulates one quick-add step onto it (or resets it to zero), and submits a
delivery entry dated to that day at the customer's configured price.`,
	RunE: runOverviewQuickAdd,
}

var overviewPayCmd = &cobra.Command{
	Use:   "pay",
	Short: "Toggle a customer's paid status for today",
	Long: `Flips the payment flag for today regardless of which day the grid
shows; the flag is period-level, not per-cell.`,
	RunE: runOverviewPay,
}

func init() {
	now := time.Now()
	overviewCmd.PersistentFlags().IntVar(&overviewMonth, "month", int(now.Month()), "month 1-12")
	overviewCmd.PersistentFlags().IntVar(&overviewYear, "year", now.Year(), "year")

	overviewQuickAddCmd.Flags().IntVar(&overviewDay, "day", 0, "day of month (required)")
	overviewQuickAddCmd.Flags().StringVar(&overviewCustomer, "customer", "", "customer id or name (required)")
	overviewQuickAddCmd.Flags().Float64Var(&overviewStep, "add", 0, "quick-add step (0.25, 0.5, 0.75, 1 or 2)")
	overviewQuickAddCmd.Flags().BoolVar(&overviewReset, "reset", false, "reset the cell to zero litres")
	overviewQuickAddCmd.MarkFlagRequired("day")
	overviewQuickAddCmd.MarkFlagRequired("customer")

	overviewPayCmd.Flags().StringVar(&overviewCustomer, "customer", "", "customer id or name (required)")
	overviewPayCmd.MarkFlagRequired("customer")

	overviewCmd.AddCommand(overviewQuickAddCmd, overviewPayCmd)
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ov, err := a.client.GetOverview(cmd.Context(), a.shift, overviewMonth, overviewYear)
	if err != nil {
		return fmt.Errorf("loading overview: %w", err)
	}

	printOverview(ov, a.shift)
	return nil
}

// printOverview renders the grid: customers as rows, one column per day of
// the month, then the server-supplied totals. Nothing is recomputed locally.
func printOverview(ov *models.Overview, shift string) {
	fmt.Printf("\nOverview (%s) — %s %d\n", shift, time.Month(ov.Month).String(), ov.Year)

	header := fmt.Sprintf("%-20s", "Customer")
	for d := 1; d <= ov.DaysInMonth; d++ {
		header += fmt.Sprintf("%7d", d)
	}
	header += fmt.Sprintf("  %8s  %12s  %-6s", "Litres", "Amount", "Paid")

	rule := strings.Repeat("-", len([]rune(header)))
	fmt.Println(rule)
	fmt.Println(header)
	fmt.Println(rule)

	for _, c := range ov.Customers {
		line := fmt.Sprintf("%-20s", c.DisplayName())
		for d := 1; d <= ov.DaysInMonth; d++ {
			if litres := ov.Litres(d, c.ID); litres != 0 {
				line += fmt.Sprintf("%7.2f", litres)
			} else {
				line += fmt.Sprintf("%7s", "-")
			}
		}
		paid := "no"
		if ov.PaidToday(c.DisplayName()) {
			paid = "yes"
		}
		line += fmt.Sprintf("  %8.2f  %12s  %-6s",
			ov.TotalLitresPerCustomer[c.ID],
			export.Money(ov.TotalAmountPerCustomer[c.ID]),
			paid)
		fmt.Println(line)
	}

	fmt.Println(rule)

	totals := fmt.Sprintf("%-20s", "Total / day")
	for d := 1; d <= ov.DaysInMonth; d++ {
		totals += fmt.Sprintf("%7.2f", ov.TotalPerDay[d])
	}
	fmt.Println(totals)
	fmt.Printf("Grand total: %s (%d customers)\n", export.Money(ov.GrandTotalAmount), len(ov.Customers))
}

func runOverviewQuickAdd(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if !overviewReset && overviewStep == 0 {
		return fmt.Errorf("give either --add or --reset")
	}
	if overviewReset && overviewStep != 0 {
		return fmt.Errorf("--add and --reset are mutually exclusive")
	}
	if !overviewReset && !isQuickStep(overviewStep) {
		return fmt.Errorf("invalid quick-add step %v (available: %v)", overviewStep, models.QuickAddSteps)
	}

	ov, err := a.client.GetOverview(cmd.Context(), a.shift, overviewMonth, overviewYear)
	if err != nil {
		return fmt.Errorf("loading overview: %w", err)
	}

	customer, err := a.client.FindCustomer(cmd.Context(), a.shift, overviewCustomer)
	if err != nil {
		return err
	}

	step := overviewStep
	if overviewReset {
		step = 0
	}

	if _, err := a.client.QuickAddEntry(cmd.Context(), ov, customer, a.shift, overviewDay, step); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	// Full re-fetch instead of patching the local copy
	fresh, err := a.client.GetOverview(cmd.Context(), a.shift, overviewMonth, overviewYear)
	if err != nil {
		return fmt.Errorf("reloading overview: %w", err)
	}

	fmt.Printf("✓ %s on %s %d now at %.2f L\n",
		customer.DisplayName(), time.Month(fresh.Month).String(), overviewDay,
		fresh.Litres(overviewDay, customer.ID))
	return nil
}

func runOverviewPay(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ov, err := a.client.GetOverview(cmd.Context(), a.shift, overviewMonth, overviewYear)
	if err != nil {
		return fmt.Errorf("loading overview: %w", err)
	}

	customer, err := a.client.FindCustomer(cmd.Context(), a.shift, overviewCustomer)
	if err != nil {
		return err
	}

	name := customer.DisplayName()
	paid := ov.PaidToday(name)

	if err := a.client.SetPaid(cmd.Context(), name, a.shift, !paid); err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	fresh, err := a.client.GetOverview(cmd.Context(), a.shift, overviewMonth, overviewYear)
	if err != nil {
		return fmt.Errorf("reloading overview: %w", err)
	}

	status := "Unpaid"
	if fresh.PaidToday(name) {
		status = "Paid"
	}
	fmt.Printf("✓ %s is now %s for today\n", name, status)
	return nil
}
