// Package cli is the storefront-e2e command line
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/logging"
)

// app carries what PersistentPreRunE prepared for the subcommands
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *logrus.Logger
}

// NewRootCommand - creates the storefront-e2e command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "storefront-e2e",
		Short:         "Browser driven end-to-end scenarios for the nopCommerce storefront and admin console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./storefront.yaml)")

	root.AddCommand(
		newRunCommand(a),
		newListCommand(),
		newGraphCommand(),
		newHistoryCommand(a),
	)
	return root
}

// init - loads .env, the configuration and the logger
func (a *app) init() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	a.logger = logging.NewLogger(cfg.Logger)
	return nil
}
