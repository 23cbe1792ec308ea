package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shashankyadav00/milk-attendance-system/internal/api"
	"github.com/Shashankyadav00/milk-attendance-system/internal/config"
	"github.com/Shashankyadav00/milk-attendance-system/internal/session"
	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

var (
	cfgFile   string
	statePath string
	flagShift string
)

var rootCmd = &cobra.Command{
	Use:   "milkctl",
	Short: "Track daily milk deliveries, customers and payments",
	Long: `Milkctl is the command line client of the milk attendance service.
It records deliveries, manages customers and payment status, and exports
monthly overview snapshots, talking to the backend HTTP API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "session state file (default is ./state.db)")
	rootCmd.PersistentFlags().StringVar(&flagShift, "shift", "", "shift to work on, Morning or Night (default is the stored preference)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getStatePath returns the session state file path (local directory)
func getStatePath() string {
	if statePath != "" {
		return statePath
	}
	return "state.db"
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// openStore opens the persisted session/preference store
func openStore() (*session.Store, error) {
	path := getStatePath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	return session.Open(path)
}

// newClient builds the API client with the session threaded in explicitly
func newClient(cfg *config.Config, store *session.Store) *api.Client {
	return api.New(cfg.GetBaseURL(), cfg.GetRequestTimeout(), store)
}

// requireLogin is the route guard: a presence-only check of the stored
// identifier. A stale identifier passes here and is rejected by the server
// on the next call.
func requireLogin(store *session.Store) error {
	userID, err := store.UserID()
	if err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("not logged in. Run 'milkctl login' first")
	}
	return nil
}

// resolveShift picks the shift for this invocation. An explicit --shift wins
// and is persisted as the new preference, like the shift selector in the UI
// it replaces; otherwise the stored preference applies.
func resolveShift(cmd *cobra.Command, store *session.Store) (string, error) {
	if cmd.Flags().Changed("shift") {
		if err := validateShift(flagShift); err != nil {
			return "", err
		}
		if err := store.SetSelectedShift(flagShift); err != nil {
			return "", err
		}
		return flagShift, nil
	}
	return store.SelectedShift()
}

func validateShift(shift string) error {
	if shift != models.ShiftMorning && shift != models.ShiftNight {
		return fmt.Errorf("unknown shift: %s (available: %s, %s)", shift, models.ShiftMorning, models.ShiftNight)
	}
	return nil
}

// app bundles what every protected command needs: config, the open session
// store, the API client and the resolved shift
type app struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	shift  string
}

func (a *app) Close() {
	a.store.Close()
}

// setupProtected loads config, opens the store, enforces the login guard and
// resolves the shift for this invocation
func setupProtected(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	if err := requireLogin(store); err != nil {
		store.Close()
		return nil, err
	}

	shift, err := resolveShift(cmd, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		store:  store,
		client: newClient(cfg, store),
		shift:  shift,
	}, nil
}

// confirm asks a yes/no question on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
