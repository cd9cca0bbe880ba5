package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/clozeit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer d.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			host, port, err := splitAddr(addr)
			if err != nil {
				return err
			}
			d.cfg.Server.Host, d.cfg.Server.Port = host, port
		}

		srv := server.New(server.Options{
			Config:    d.cfg.Server,
			Logger:    d.logger,
			Generator: d.generator,
			Analyzer:  d.analyzer,
		})

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			d.logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address host:port (overrides server.host and server.port)")
}

func splitAddr(addr string) (string, int, error) {
	host, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in --addr %q", addr)
	}
	return host, port, nil
}
