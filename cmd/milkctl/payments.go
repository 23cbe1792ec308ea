package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

var (
	paymentCustomer  string
	remindEnable     bool
	remindDisable    bool
	remindTime       string
	remindRepeatDays int
	remindTest       bool
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Track paid/unpaid status and reminder emails",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show payment status per customer",
	RunE:  runPaymentsList,
}

var paymentsToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip a customer's paid/unpaid status",
	RunE:  runPaymentsToggle,
}

var paymentsUnpaidCmd = &cobra.Command{
	Use:   "unpaid",
	Short: "Show the server-filtered unpaid customer list",
	RunE:  runPaymentsUnpaid,
}

var paymentsRemindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show or save the email reminder configuration",
	Long: `Without flags, shows the reminder settings of the selected shift.
With flags, saves them; saving with the reminder enabled immediately
dispatches a one-shot unpaid report on top of scheduling it. --test fires a
reminder right away without saving anything.`,
	RunE: runPaymentsRemind,
}

var paymentsEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send the unpaid report to the admin inbox now",
	RunE:  runPaymentsEmail,
}

var paymentsNotificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show the reminder email log",
	RunE:  runPaymentsNotifications,
}

func init() {
	paymentsToggleCmd.Flags().StringVar(&paymentCustomer, "customer", "", "customer id or name (required)")
	paymentsToggleCmd.MarkFlagRequired("customer")

	paymentsRemindCmd.Flags().BoolVar(&remindEnable, "enable", false, "enable the reminder")
	paymentsRemindCmd.Flags().BoolVar(&remindDisable, "disable", false, "disable the reminder")
	paymentsRemindCmd.Flags().StringVar(&remindTime, "time", "", "dispatch time HH:MM")
	paymentsRemindCmd.Flags().IntVar(&remindRepeatDays, "repeat-days", 0, "repeat every N days (min 1)")
	paymentsRemindCmd.Flags().BoolVar(&remindTest, "test", false, "trigger a test reminder without saving")

	paymentsCmd.AddCommand(paymentsListCmd, paymentsToggleCmd, paymentsUnpaidCmd,
		paymentsRemindCmd, paymentsEmailCmd, paymentsNotificationsCmd)
	rootCmd.AddCommand(paymentsCmd)
}

// paymentFor matches a payment row to a customer name. Rows are keyed by
// name, so the match is trimmed and case-insensitive.
func paymentFor(payments []models.Payment, name string) *models.Payment {
	want := models.NormalizeName(name)
	for i := range payments {
		if models.NormalizeName(payments[i].CustomerName) == want {
			return &payments[i]
		}
	}
	return nil
}

func runPaymentsList(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	customers, err := a.client.ListCustomers(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("listing customers: %w", err)
	}

	payments, err := a.client.ListPayments(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("listing payments: %w", err)
	}

	if len(customers) == 0 {
		fmt.Printf("No customers added for the %s shift\n", a.shift)
		return nil
	}

	fmt.Printf("\nPayment Summary (%s):\n", a.shift)
	fmt.Println("----------------------------------")
	fmt.Printf("%-24s  %-8s\n", "Customer", "Status")
	fmt.Println("----------------------------------")

	unpaid := 0
	for _, c := range customers {
		status := "Unpaid"
		if row := paymentFor(payments, c.DisplayName()); row != nil && row.Paid {
			status = "Paid"
		} else {
			unpaid++
		}
		fmt.Printf("%-24s  %-8s\n", c.DisplayName(), status)
	}

	fmt.Println("----------------------------------")
	fmt.Printf("%d customers, %d unpaid\n", len(customers), unpaid)
	return nil
}

func runPaymentsToggle(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	customer, err := a.client.FindCustomer(cmd.Context(), a.shift, paymentCustomer)
	if err != nil {
		return err
	}
	name := customer.DisplayName()

	payments, err := a.client.ListPayments(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("listing payments: %w", err)
	}

	paid := false
	if row := paymentFor(payments, name); row != nil {
		paid = row.Paid
	}

	if err := a.client.SetPaid(cmd.Context(), name, a.shift, !paid); err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	// Re-fetch rather than trusting the local flip
	fresh, err := a.client.ListPayments(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("reloading payments: %w", err)
	}

	status := "Unpaid"
	if row := paymentFor(fresh, name); row != nil && row.Paid {
		status = "Paid"
	}
	fmt.Printf("✓ %s is now %s\n", name, status)
	return nil
}

func runPaymentsUnpaid(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	rows, err := a.client.UnpaidRows(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("listing unpaid rows: %w", err)
	}

	if len(rows) == 0 {
		fmt.Printf("Everyone in the %s shift has paid\n", a.shift)
		return nil
	}

	fmt.Printf("\nUnpaid Customers (%s):\n", a.shift)
	fmt.Println("------------------------------")
	for i, row := range rows {
		fmt.Printf("%3d. %s\n", i+1, row.CustomerName)
	}
	fmt.Println("------------------------------")
	fmt.Printf("%d unpaid. Mark one paid with 'milkctl payments toggle --customer <name>'\n", len(rows))
	return nil
}

func runPaymentsRemind(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if remindTest {
		if err := a.client.TriggerReminder(cmd.Context(), a.shift); err != nil {
			return err
		}
		fmt.Println("✓ Test reminder triggered. An email is sent if unpaid customers exist.")
		return printNotifications(cmd.Context(), a)
	}

	reminder, err := a.client.GetReminder(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("loading reminder settings: %w", err)
	}

	changed := cmd.Flags().Changed("enable") || cmd.Flags().Changed("disable") ||
		cmd.Flags().Changed("time") || cmd.Flags().Changed("repeat-days")

	if !changed {
		state := "disabled"
		if reminder.Enabled {
			state = "enabled"
		}
		fmt.Printf("Reminder (%s): %s, at %s, every %d day(s)\n",
			a.shift, state, reminder.Time, reminder.RepeatDays)
		return nil
	}

	if remindEnable && remindDisable {
		return fmt.Errorf("--enable and --disable are mutually exclusive")
	}
	if remindEnable {
		reminder.Enabled = true
	}
	if remindDisable {
		reminder.Enabled = false
	}
	if cmd.Flags().Changed("time") {
		reminder.Time = remindTime
	}
	if cmd.Flags().Changed("repeat-days") {
		if remindRepeatDays < 1 {
			return fmt.Errorf("--repeat-days must be at least 1")
		}
		reminder.RepeatDays = remindRepeatDays
	}

	if err := a.client.SaveReminder(cmd.Context(), a.shift, *reminder); err != nil {
		return err
	}
	fmt.Println("✓ Reminder saved")

	// Saving an enabled reminder also dispatches a one-shot unpaid report;
	// the two calls are sequential with no rollback if the second fails.
	if reminder.Enabled {
		if err := a.client.TriggerReminder(cmd.Context(), a.shift); err != nil {
			fmt.Printf("⚠ Reminder saved but dispatch failed: %v\n", err)
			return nil
		}
		fmt.Println("✓ Unpaid report dispatched")
	}

	return printNotifications(cmd.Context(), a)
}

func runPaymentsEmail(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.SendUnpaidEmail(cmd.Context(), a.shift); err != nil {
		return err
	}

	fmt.Println("✓ Unpaid customers email sent to admin")
	return printNotifications(cmd.Context(), a)
}

func runPaymentsNotifications(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return printNotifications(cmd.Context(), a)
}

// printNotifications refreshes and prints the read-only email log. Called
// after every action that might append to it.
func printNotifications(ctx context.Context, a *app) error {
	notifications, err := a.client.ListNotifications(ctx, a.shift)
	if err != nil {
		return fmt.Errorf("listing notifications: %w", err)
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications yet.")
		return nil
	}

	fmt.Printf("\nRecent Notifications (%s):\n", a.shift)
	fmt.Println("--------------------------------------------------")
	for _, n := range notifications {
		fmt.Printf("%-20s  %s\n", n.DateSent, n.Subject)
	}
	return nil
}
