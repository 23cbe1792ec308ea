package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [Morning|Night]",
	Short: "Show or set the selected shift preference",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		shift, err := store.SelectedShift()
		if err != nil {
			return err
		}
		fmt.Printf("Selected shift: %s\n", shift)
		return nil
	}

	shift := args[0]
	if err := validateShift(shift); err != nil {
		return err
	}

	if err := store.SetSelectedShift(shift); err != nil {
		return fmt.Errorf("saving shift preference: %w", err)
	}

	fmt.Printf("✓ Selected shift set to %s\n", shift)
	return nil
}
