package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shashankyadav00/milk-attendance-system/internal/api"
)

var (
	customerName     string
	customerNickname string
	customerPrice    string
	customerID       int64
	customerYes      bool
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers of a shift",
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers of the selected shift",
	RunE:  runCustomerList,
}

var customerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a customer",
	RunE:  runCustomerAdd,
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a customer",
	RunE:  runCustomerUpdate,
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a customer",
	RunE:  runCustomerDelete,
}

func init() {
	customerAddCmd.Flags().StringVar(&customerName, "name", "", "full name (required)")
	customerAddCmd.Flags().StringVar(&customerNickname, "nickname", "", "nickname (optional)")
	customerAddCmd.Flags().StringVar(&customerPrice, "price", "", "default price per litre (optional)")

	customerUpdateCmd.Flags().Int64Var(&customerID, "id", 0, "customer id (required)")
	customerUpdateCmd.Flags().StringVar(&customerName, "name", "", "new full name")
	customerUpdateCmd.Flags().StringVar(&customerNickname, "nickname", "", "new nickname (empty clears it)")
	customerUpdateCmd.Flags().StringVar(&customerPrice, "price", "", "new price per litre (empty clears it)")
	customerUpdateCmd.MarkFlagRequired("id")

	customerDeleteCmd.Flags().Int64Var(&customerID, "id", 0, "customer id (required)")
	customerDeleteCmd.Flags().BoolVar(&customerYes, "yes", false, "skip the confirmation prompt")
	customerDeleteCmd.MarkFlagRequired("id")

	customerCmd.AddCommand(customerListCmd, customerAddCmd, customerUpdateCmd, customerDeleteCmd)
	rootCmd.AddCommand(customerCmd)
}

func runCustomerList(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	customers, err := a.client.ListCustomers(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("listing customers: %w", err)
	}

	if len(customers) == 0 {
		fmt.Printf("No customers added for the %s shift\n", a.shift)
		return nil
	}

	fmt.Printf("\nCustomers (%s):\n", a.shift)
	fmt.Println("--------------------------------------------------------")
	fmt.Printf("%-5s  %-20s  %-15s  %10s\n", "ID", "Name", "Nickname", "₹ / Litre")
	fmt.Println("--------------------------------------------------------")

	for _, c := range customers {
		nickname := "-"
		if c.Nickname != nil {
			nickname = *c.Nickname
		}
		price := "-"
		if c.PricePerLitre != nil {
			price = strconv.FormatFloat(*c.PricePerLitre, 'f', 2, 64)
		}
		fmt.Printf("%-5d  %-20s  %-15s  %10s\n", c.ID, c.FullName, nickname, price)
	}

	fmt.Println("--------------------------------------------------------")
	fmt.Printf("%d customers\n", len(customers))
	return nil
}

func runCustomerAdd(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	created, err := a.client.CreateCustomer(cmd.Context(), api.CustomerParams{
		FullName:      customerName,
		Nickname:      customerNickname,
		PricePerLitre: customerPrice,
		Shift:         a.shift,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added customer %s (id %d) to the %s shift\n", created.FullName, created.ID, a.shift)
	return nil
}

func runCustomerUpdate(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	customers, err := a.client.ListCustomers(cmd.Context(), a.shift)
	if err != nil {
		return fmt.Errorf("loading customer: %w", err)
	}

	idx := -1
	for i := range customers {
		if customers[i].ID == customerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no customer with id %d in the %s shift", customerID, a.shift)
	}
	customer := customers[idx]

	if cmd.Flags().Changed("name") {
		name := strings.TrimSpace(customerName)
		if name == "" {
			return api.ErrNameRequired
		}
		customer.FullName = name
	}
	if cmd.Flags().Changed("nickname") {
		if nickname := strings.TrimSpace(customerNickname); nickname != "" {
			customer.Nickname = &nickname
		} else {
			customer.Nickname = nil
		}
	}
	if cmd.Flags().Changed("price") {
		if priceStr := strings.TrimSpace(customerPrice); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				return fmt.Errorf("invalid price per litre: %q", customerPrice)
			}
			customer.PricePerLitre = &price
		} else {
			customer.PricePerLitre = nil
		}
	}

	updated, err := a.client.UpdateCustomer(cmd.Context(), customerID, &customer)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	fmt.Printf("✓ Updated customer %s (id %d)\n", updated.FullName, updated.ID)
	return nil
}

func runCustomerDelete(cmd *cobra.Command, args []string) error {
	a, err := setupProtected(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if !customerYes && !confirm("Delete this customer?") {
		fmt.Println("Aborted")
		return nil
	}

	if err := a.client.DeleteCustomer(cmd.Context(), customerID); err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	fmt.Printf("✓ Deleted customer %d\n", customerID)
	return nil
}
