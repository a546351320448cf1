package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"expense-view/cmd/cash"
	"expense-view/cmd/category"
	"expense-view/cmd/duplicates"
	"expense-view/cmd/expense"
	"expense-view/cmd/export"
	"expense-view/cmd/fuzzy"
	"expense-view/cmd/importcsv"
	"expense-view/cmd/list"
	"expense-view/cmd/login"
	"expense-view/cmd/recategorize"
	"expense-view/cmd/root"
	"expense-view/cmd/rules"
	"expense-view/cmd/stats"
	"expense-view/cmd/tui"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Environment first, so LOG_LEVEL from .env applies before anything logs.
	loadEnvSilently()
	root.Log.SetLevel(configureLogLevelDirectly())

	root.Init()

	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(expense.Cmd)
	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(stats.Cmd)
	root.Cmd.AddCommand(importcsv.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(duplicates.Cmd)
	root.Cmd.AddCommand(cash.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(fuzzy.Cmd)
	root.Cmd.AddCommand(recategorize.Cmd)
	root.Cmd.AddCommand(login.Cmd)
	root.Cmd.AddCommand(tui.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global logrus level from LOG_LEVEL
// and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
