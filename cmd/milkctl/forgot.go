package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forgotEmail string

var forgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Request a password reset OTP by email",
	Long: `Step one of the password reset flow. The server emails a one-time
code; complete the reset with 'milkctl reset'.`,
	RunE: runForgot,
}

func init() {
	forgotCmd.Flags().StringVar(&forgotEmail, "email", "", "account email")
	forgotCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(forgotCmd)
}

func runForgot(cmd *cobra.Command, args []string) error {
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

	message, err := client.ForgotPassword(cmd.Context(), forgotEmail)
	if err != nil {
		return err
	}

	if message != "" {
		fmt.Println(message)
	}
	fmt.Println("✓ OTP requested. Run 'milkctl reset' with the code from your email.")
	return nil
}
