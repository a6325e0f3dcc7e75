package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/smartname/internal/adapters/mcptools"
	"github.com/kirillkom/smartname/internal/bootstrap"
	"github.com/kirillkom/smartname/internal/config"
)

var version = "dev"

func main() {
	cfg, err := config.LoadWithFile("")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, "smartname-mcp")
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	app.Logger.Info("mcp_server_starting", "transport", "stdio", "version", version)
	if err := mcptools.NewServer(app.Analyzer, app.Organizer, app.Logger).ServeStdio("smartname", version); err != nil {
		app.Logger.Error("mcp_server_failed", "error", err)
	}
}
