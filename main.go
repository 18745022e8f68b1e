package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/OliveiraNt/netbind/cmd"
	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	utils.InitLogger()
	config.InitI18n()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		utils.Logger.Error("netbind failed", "err", err)
		stop()
		os.Exit(1)
	}
}
