package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"railchat/internal/config"
	"railchat/internal/logger"
	"railchat/internal/repository"
	"railchat/internal/service"
)

var (
	migrateFlag bool
	seedFlag    bool
	debugFlag   bool
	explainFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "railchat",
	Short: "Assistant ferroviaire en ligne de commande",
	Long: `railchat answers French questions about trains, schedules, prices and lines
from the catalog database. Type "aide" for examples and "quitter" to leave.`,
	SilenceUsage: true,
	RunE:         runConsole,
}

func init() {
	rootCmd.Flags().BoolVar(&migrateFlag, "migrate", false, "create the database tables before starting")
	rootCmd.Flags().BoolVar(&seedFlag, "seed", false, "replace the catalog with the demo data set (implies --migrate)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&explainFlag, "explain", false, "print the detected intent and stations before each reply")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if debugFlag {
		cfg.Logging.Level = "debug"
	}
	log := logger.New(cfg.Logging)

	repo, err := repository.NewRepository(
		cfg.Database.Driver,
		cfg.GetDSN(),
		cfg.Database.MaxConnections,
		cfg.Database.MaxIdleConnections,
	)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if migrateFlag || seedFlag {
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		log.Info("schema ready")
	}
	if seedFlag {
		if err := repo.Seed(ctx); err != nil {
			return err
		}
		log.Info("demo catalog loaded")
	}

	assistant := service.NewAssistant(repo, cfg.NLU, cfg.Database.QueryTimeout, log)

	session := &chatSession{
		assistant: assistant,
		in:        cmd.InOrStdin(),
		out:       cmd.OutOrStdout(),
		explain:   explainFlag,
	}
	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("console session: %w", err)
	}
	return nil
}
