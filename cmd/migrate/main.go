package main

import (
	"context"
	"fmt"
	"os"

	"go-hrops/db/migrations"
	"go-hrops/internal/shared/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const migrationTable = "schema_migrations"

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "run database migrations embedded in the binary",
		SilenceUsage: true,
	}

	root.AddCommand(
		gooseCommand("up", "apply all pending migrations"),
		gooseCommand("down", "roll back the latest migration"),
		gooseCommand("status", "print the migration status"),
	)
	return root
}

func gooseCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGoose(cmd.Context(), name)
		},
	}
}

func runGoose(ctx context.Context, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrationTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	zap.L().Info("running migrations", zap.String("command", command), zap.String("db", cfg.Database.Name))
	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
