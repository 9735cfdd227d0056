package main

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/benjaminjkraft/wordlebot/internal/config"
	"github.com/benjaminjkraft/wordlebot/internal/server"
)

var (
	addr string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the guess API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	if cfg.Log.SlogLevel() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	listen := cfg.Server.Addr
	if addr != "" {
		listen = addr
	}
	if err := server.New(eng, logger).Run(cmd.Context(), listen); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
