// Command dropfour starts the Drop Four game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the WebSocket game
//     endpoint, the read-only REST API, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs a read-only MCP stdio server over the same service
//
// Flags control host/port, the board preset directory, debug logging, version
// output, and optional ngrok tunneling for easy external access during
// development. Environment variables (optionally via a .env file) supply the
// flag defaults.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/dropfour/dropfour/api"
	"github.com/dropfour/dropfour/game/config"
	"github.com/dropfour/dropfour/game/service"
	"github.com/dropfour/dropfour/game/session"
	"github.com/dropfour/dropfour/transport/mcp"
	"github.com/dropfour/dropfour/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Drop Four Server"
)

// envConfig carries the environment-sourced defaults for the flags below.
// A .env file in the working directory is honored when present.
type envConfig struct {
	Port         int    `env:"PORT" envDefault:"8080"`
	Host         string `env:"HOST" envDefault:"localhost"`
	BoardDir     string `env:"BOARD_DIR" envDefault:"boards"`
	Board        string `env:"BOARD" envDefault:"classic"`
	Debug        bool   `env:"DEBUG"`
	NgrokEnabled bool   `env:"NGROK_ENABLED"`
	NgrokAuth    string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain  string `env:"NGROK_DOMAIN"`
}

// Configuration flags control how the server starts and which services are enabled.
var (
	port         *int
	host         *string
	boardDir     *string
	boardName    *string
	debug        *bool
	version      *bool
	ngrokEnabled *bool
	ngrokAuth    *string
	ngrokDomain  *string
)

// defineFlags parses the environment and registers the flags with their
// environment-derived defaults. Separated from init so tests can reuse it.
func defineFlags(fs *flag.FlagSet) envConfig {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		log.Printf("Warning: failed to parse environment: %v", err)
	}

	port = fs.Int("port", cfg.Port, "HTTP server port")
	host = fs.String("host", cfg.Host, "HTTP server host")
	boardDir = fs.String("board-dir", cfg.BoardDir, "Directory containing board presets")
	boardName = fs.String("board", cfg.Board, "Board preset for new games")
	debug = fs.Bool("debug", cfg.Debug, "Enable debug logging")
	version = fs.Bool("version", false, "Show version information")
	ngrokEnabled = fs.Bool("ngrok", cfg.NgrokEnabled, "Enable ngrok tunnel")
	ngrokAuth = fs.String("ngrok-auth", cfg.NgrokAuth, "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain = fs.String("ngrok-domain", cfg.NgrokDomain, "Custom ngrok domain (optional)")
	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
	fmt.Fprintf(os.Stderr, "Available modes:\n")
	fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with WebSocket, API, and MCP endpoint (default)\n")
	fmt.Fprintf(os.Stderr, "  stdio-mcp        Run read-only MCP stdio server\n")
	fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
	fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -board mini        # Use the \"mini\" board preset for new games\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	defineFlags(flag.CommandLine)
	flag.Usage = usage
	flag.Parse()

	// Show version if requested
	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	// Setup logging
	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	// Determine mode from command
	args := flag.Args()
	mode := "server" // default
	if len(args) > 0 {
		mode = args[0]
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	// Initialize services
	registry, gameService, err := initializeServices(*boardDir, *boardName)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCP(gameService)
		return

	case "server", "http":
		runHTTPServer(registry, gameService)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// initializeServices wires the board manager, session registry, and game service.
func initializeServices(boardDir, boardName string) (*session.Registry, service.GameService, error) {
	boards := config.NewManager(boardDir)

	board, err := boards.Load(boardName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load board %q: %w", boardName, err)
	}

	registry, err := session.NewRegistry(board, websocket.Codec{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session registry: %w", err)
	}

	gameService := service.NewGameService(registry, boards)
	return registry, gameService, nil
}

// runHTTPServer starts the HTTP server with the WebSocket game endpoint,
// the REST API, and an /mcp endpoint. If ngrok is enabled (via flag or
// environment), it also provisions a public tunnel.
func runHTTPServer(registry *session.Registry, gameService service.GameService) {
	// Create the WebSocket handler and API server
	wsHandler := websocket.NewHandler(registry)
	apiServer := api.NewServer(gameService, wsHandler)

	// Setup HTTP server address
	addr := fmt.Sprintf("%s:%d", *host, *port)

	// Create MCP server for the /mcp endpoint
	mcpServer := mcp.NewServer(gameService)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	// Always add MCP endpoint for HTTP server
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Start ngrok tunnel if enabled
	if *ngrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()

			authToken := *ngrokAuth
			if authToken == "" {
				log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN env var)")
				return
			}

			log.Println("Starting ngrok tunnel...")

			// Configure ngrok endpoint
			var tunnel ngrokConfig.Tunnel
			if *ngrokDomain != "" {
				tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(*ngrokDomain))
				log.Printf("Using custom ngrok domain: %s", *ngrokDomain)
			} else {
				tunnel = ngrokConfig.HTTPEndpoint()
			}

			tun, err := ngrok.Listen(ctx,
				tunnel,
				ngrok.WithAuthtoken(authToken),
			)
			if err != nil {
				log.Printf("Failed to start ngrok tunnel: %v", err)
				return
			}
			defer func() {
				if err := tun.Close(); err != nil {
					log.Printf("Failed to close ngrok tunnel: %v", err)
				}
			}()

			ngrokURL := tun.URL()
			log.Printf("Ngrok tunnel established: %s", ngrokURL)
			log.Printf("  WebSocket (ngrok): %s/ws", strings.Replace(ngrokURL, "https", "wss", 1))
			log.Printf("  REST API (ngrok): %s/api", ngrokURL)
			log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

			// Serve HTTP through ngrok tunnel
			if err := http.Serve(tun, mainRouter); err != nil && err != http.ErrServerClosed {
				log.Printf("Ngrok server error: %v", err)
			}
			log.Println("Ngrok tunnel closed")
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Wait for all goroutines to finish
	wg.Wait()
	log.Println("Server stopped")
}

// runStdioMCP runs the read-only MCP stdio server over the in-process
// game service (blocking).
func runStdioMCP(gameService service.GameService) {
	mcpServer := mcp.NewServer(gameService)

	log.Println("MCP stdio server ready")
	if err := server.ServeStdio(mcpServer.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}
