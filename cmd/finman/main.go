package main

import (
	"context"
	"os"

	"finman/internal/cli"
	"finman/internal/console"
	"finman/internal/log"
	"finman/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	stores, closeStores := cli.InitStores(logger, cfg)
	defer closeStores()

	notifier, closeNotifier := cli.InitNotifier(logger, cfg)
	defer closeNotifier()

	exporter := cli.InitExporter(ctx, logger, cfg)

	users := services.NewUserService(stores.Users)
	transactions := services.NewTransactionService(stores.Transactions)
	budgets := services.NewBudgetService(stores.Budgets, transactions)
	goals := services.NewGoalService(stores.Goals)
	admin := services.NewAdminService(stores.Users, stores.Transactions)

	if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error("Failed to seed administrator account", log.FieldError, err)
		os.Exit(1)
	}

	ctrl := console.New(os.Stdin, os.Stdout, console.Deps{
		Users:        users,
		Transactions: transactions,
		Budgets:      budgets,
		Goals:        goals,
		Admin:        admin,
		Notifier:     notifier,
		Exporter:     exporter,
		Logger:       logger.WithComponent(log.ComponentConsole),
	})

	logger.Info("Starting finman", "data_backend", cfg.DataBackend)
	ctrl.Run(ctx)
	logger.Info("Stopped")
}
