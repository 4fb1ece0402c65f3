package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrissnell/dikeprep/internal/log"
	"github.com/chrissnell/dikeprep/internal/server"
	"github.com/chrissnell/dikeprep/pkg/config"
)

func main() {
	listen := flag.String("listen", ":8080", "Address to listen on")
	sqliteFile := flag.String("sqlite", "", "SQLite configuration database serving /configs (optional)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store server.ConfigStore
	if *sqliteFile != "" {
		provider, err := config.NewSQLiteProvider(*sqliteFile)
		if err != nil {
			log.Fatalf("Failed to open configuration database: %v", err)
		}
		defer provider.Close()

		if err := provider.Migrate(ctx, log.GetSugaredLogger()); err != nil {
			log.Fatalf("Failed to migrate configuration database: %v", err)
		}
		store = provider
	}

	srv := server.New(*listen, store, log.GetSugaredLogger())
	if err := srv.Run(ctx); err != nil {
		log.Errorf("Server error: %v", err)
		os.Exit(1)
	}
}
