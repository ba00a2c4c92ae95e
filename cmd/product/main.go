package main

import (
	"log/slog"
	"os"

	"github.com/appifylab/dhakacelsius/internal/app"
)

func main() {
	if err := app.Run("product", "product"); err != nil {
		slog.Error("service stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("service terminated gracefully")
}
