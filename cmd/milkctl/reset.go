package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resetEmail    string
	resetOTP      string
	resetPassword string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the password with an emailed OTP",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().StringVar(&resetEmail, "email", "", "account email")
	resetCmd.Flags().StringVar(&resetOTP, "otp", "", "one-time code from the reset email")
	resetCmd.Flags().StringVar(&resetPassword, "new-password", "", "new account password")
	resetCmd.MarkFlagRequired("email")
	resetCmd.MarkFlagRequired("otp")
	resetCmd.MarkFlagRequired("new-password")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer store.Close()

	client := newClient(cfg, store)

	message, err := client.ResetPassword(cmd.Context(), resetEmail, resetOTP, resetPassword)
	if err != nil {
		return err
	}

	if message != "" {
		fmt.Println(message)
	}
	fmt.Println("✓ Password reset. Run 'milkctl login' to sign in.")
	return nil
}
