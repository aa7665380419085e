package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	dbeditor "github.com/Razielxkx/Database-editor"
	"github.com/Razielxkx/Database-editor/core"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	port := flag.Int("port", 5433, "TCP port to listen on")
	dbPath := flag.String("db", "", "Database file (memory if empty)")
	journalDir := flag.String("journal", "", "Change journal directory (memory if empty)")
	jwtSecret := flag.String("jwtSecret", os.Getenv("DBEDITOR_JWT_SECRET"), "Shared secret for JWT auth (empty disables auth)")
	issuer := flag.String("issuer", "", "Expected JWT issuer claim")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Database Editor Server v%s\n", Version)
		return
	}

	if *dbPath == "" {
		log.Println("Using in-memory database")
	} else {
		log.Printf("Using database file: %s", *dbPath)
	}

	instance, err := dbeditor.Open(*dbPath, *journalDir)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer instance.Close()

	identity := core.Identity{
		Name:  "Database Editor Server",
		Email: "server@dbeditor.local",
	}

	var authConfig *AuthConfig
	if *jwtSecret != "" {
		authConfig = &AuthConfig{
			Enabled:   true,
			JWTSecret: *jwtSecret,
			Issuer:    *issuer,
		}
		log.Println("JWT authentication enabled")
	}

	server := NewServer(instance, identity, authConfig)
	addr := fmt.Sprintf(":%d", *port)

	if err := server.Start(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Printf("║   Database Editor Server v%-10s  ║\n", Version)
	fmt.Println("║   DuckDB storage, journaled changes   ║")
	fmt.Println("╚═══════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Listening on port %d\n", *port)
	fmt.Println("Send statements (one per line), 'quit' to disconnect")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	server.Stop()
	log.Println("Server stopped")
}
