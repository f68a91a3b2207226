package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/callen/resume-analyzer/internal/config"
	"github.com/callen/resume-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes the analysis pipeline and resume storage as REST endpoints.",
	RunE:  runServe,
}

var (
	serveAddr   string
	serveMemory bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (host:port, overrides SERVER_HOST/SERVER_PORT)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Use the in-memory store instead of PostgreSQL")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	serverCfg := config.LoadServerFromEnv()
	if serveAddr != "" {
		host, portStr, err := net.SplitHostPort(serveAddr)
		if err != nil {
			return fmt.Errorf("invalid --addr %q: %w", serveAddr, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid --addr port %q", portStr)
		}
		if host != "" {
			serverCfg.Host = host
		}
		serverCfg.Port = port
	}

	storeCfg := config.LoadStoreFromEnv()
	if serveMemory {
		storeCfg.UseMemory = true
	}

	authCfg, err := config.LoadAuthFromEnv()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Server: serverCfg,
		Store:  storeCfg,
		LLM:    config.LoadLLMFromEnv(),
		Auth:   authCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
