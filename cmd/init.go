package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zalepa/crimestats/config"
	"go.uber.org/zap"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		// The config file may not exist yet, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.DefaultConfig()
			return a.initLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.cfgPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.cfgPath)
			}
			if err := config.DefaultConfig().Save(a.cfgPath); err != nil {
				return err
			}
			a.logger.Info("Wrote config", zap.String("path", a.cfgPath))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
