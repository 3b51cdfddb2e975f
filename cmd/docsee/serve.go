package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/kostyay/docsee/internal/backend"
	"github.com/kostyay/docsee/internal/bridge"
	"github.com/kostyay/docsee/internal/docker"
)

var (
	serveListen     string
	serveSecret     string
	serveDockerHost string

	tokenSecret string
	tokenTTL    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend that owns the Docker connection",
	Long: `Run the backend process. Front-ends call it over a websocket at /ws.

Examples:
  docsee serve
  docsee serve --listen 0.0.0.0:7411 --secret s3cret
  docsee serve --docker-host tcp://10.0.0.5:2375`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cmd.ErrOrStderr(), cfg.LogLevel)

		listen := cfg.Listen
		if serveListen != "" {
			listen = serveListen
		}
		secret := cfg.Secret
		if serveSecret != "" {
			secret = serveSecret
		}
		if secret == "" {
			slog.Warn("backend has no secret, any local process can call it")
		}

		ctx := cmd.Context()
		engine := docker.NewEngine(serveDockerHost)
		if ok, err := engine.Connect(ctx, ""); !ok {
			slog.Warn("Docker daemon not reachable, waiting for connect_docker", "err", err)
		}
		defer func() { _ = engine.Disconnect() }()

		srv := backend.NewServer()
		backend.Register(srv, engine)
		return backend.ListenAndServe(ctx, listen, backend.NewRouter(srv, backend.RouterOptions{Secret: secret}))
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a token for a backend started with --secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := tokenSecret
		if secret == "" {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			secret = cfg.Secret
		}
		if secret == "" {
			return errors.New("no secret: pass --secret or set secret in the config file")
		}
		token, err := bridge.NewToken(secret, tokenTTL, time.Now())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Address to listen on (default from config, 127.0.0.1:7411)")
	serveCmd.Flags().StringVar(&serveSecret, "secret", "", "Require HS256 tokens signed with this secret")
	serveCmd.Flags().StringVar(&serveDockerHost, "docker-host", "", "Docker daemon address (default DOCKER_HOST or the local socket)")

	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "Secret the backend was started with (default from config)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime, 0 never expires")

	rootCmd.AddCommand(serveCmd, tokenCmd)
}
