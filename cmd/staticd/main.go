// Package main runs a static file server: one request per connection, files
// served from the working directory on port 8080 unless configured otherwise.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/f4ah6o/staticd-go/internal/config"
	"github.com/f4ah6o/staticd-go/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Configuration file (.toml, .yaml or .yml)")
	port := flag.Int("port", config.DefaultPort, "Port to serve on")
	dir := flag.String("root", config.DefaultRoot, "Directory to serve")
	index := flag.String("index", config.DefaultDocument, "Document served for an empty path")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = *port
		case "root":
			cfg.Root = *dir
		case "index":
			cfg.DefaultDocument = *index
		}
	})

	srv, err := server.New(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to configure server: %v", err)
	}
	ln, err := srv.Listen()
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	banner := color.New(color.FgCyan, color.Bold)
	banner.Printf("🌐 Serving %s at http://localhost:%d\n", srv.Root(), ln.Addr().(*net.TCPAddr).Port)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx, ln); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
