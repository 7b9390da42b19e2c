package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wordduel/wordduel/internal/api"
	"github.com/wordduel/wordduel/internal/api/gameapi"
	"github.com/wordduel/wordduel/internal/api/identityapi"
	"github.com/wordduel/wordduel/internal/api/sessionapi"
	"github.com/wordduel/wordduel/internal/factory"
	"github.com/wordduel/wordduel/internal/session"
	redisstorage "github.com/wordduel/wordduel/internal/storage/redis"
)

// Default service ports
const (
	DefaultIdentityPort = 4001
	DefaultSessionPort  = 4002
	DefaultGamePort     = 4003
)

// serveConfig holds the flags shared by the serve subcommands
type serveConfig struct {
	bind        string
	port        int
	storageType string
	redisURL    string
	gameURL     string
	sessionURL  string
	attempts    int
	wordsPath   string
}

func (c *serveConfig) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

// factoryConfig translates serve flags into a factory config
func (c *serveConfig) factoryConfig(logger *slog.Logger) (factory.Config, error) {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: c.storageType,
		GameURL:     c.gameURL,
		SessionURL:  c.sessionURL,
		Attempts:    c.attempts,
		WordsPath:   c.wordsPath,
	}

	if c.storageType == factory.StorageTypeRedis {
		if c.redisURL == "" {
			return cfg, errors.New("--redis-url required when --storage=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.redisURL
		cfg.RedisConfig = &redisCfg
	}

	return cfg, nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a wordduel service",
	}

	cmd.AddCommand(newServeSessionCmd())
	cmd.AddCommand(newServeGameCmd())
	cmd.AddCommand(newServeIdentityCmd())

	return cmd
}

// bindEnv binds every flag to a WORDDUEL_-prefixed environment variable, so
// e.g. --redis-url can come from WORDDUEL_REDIS_URL
func bindEnv(cmd *cobra.Command) {
	v := viper.New()
	v.SetEnvPrefix("WORDDUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = v.BindPFlag(f.Name, f)
			_ = v.BindEnv(f.Name)
			if !f.Changed && v.IsSet(f.Name) {
				_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
			}
		})
	}
}

func addStorageFlags(cmd *cobra.Command, sc *serveConfig) {
	cmd.Flags().StringVar(&sc.storageType, "storage", factory.StorageTypeMemory, "Storage backend: memory, redis (env: WORDDUEL_STORAGE)")
	cmd.Flags().StringVar(&sc.redisURL, "redis-url", "", "Redis connection URL (env: WORDDUEL_REDIS_URL)")
}

func newServeSessionCmd() *cobra.Command {
	sc := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run the session authority (matchmaking and room lifecycle)",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sc.validate(); err != nil {
				return err
			}
			logger := newServiceLogger("session")

			cfg, err := sc.factoryConfig(logger)
			if err != nil {
				return err
			}
			app, err := factory.NewSessionApp(cfg)
			if err != nil {
				return err
			}

			handler := sessionapi.NewRouter(sessionapi.RouterConfig{
				Logger:     logger,
				Controller: app.Controller,
			})
			return runServer(handler, sc, logger, nil)
		},
	}

	cmd.Flags().StringVarP(&sc.bind, "bind", "b", "", "Address to bind to (env: WORDDUEL_BIND)")
	cmd.Flags().IntVarP(&sc.port, "port", "p", DefaultSessionPort, "Port to listen on (env: WORDDUEL_PORT)")
	cmd.Flags().StringVar(&sc.gameURL, "game-url", "http://localhost:4003", "Game authority base URL (env: WORDDUEL_GAME_URL)")
	cmd.Flags().IntVar(&sc.attempts, "attempts", session.DefaultAttempts, "Wrong-guess budget per game (env: WORDDUEL_ATTEMPTS)")
	addStorageFlags(cmd, sc)
	bindEnv(cmd)

	return cmd
}

func newServeGameCmd() *cobra.Command {
	sc := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "game",
		Short: "Run the game authority (gameplay and the observer channel)",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sc.validate(); err != nil {
				return err
			}
			logger := newServiceLogger("game")

			cfg, err := sc.factoryConfig(logger)
			if err != nil {
				return err
			}
			app, err := factory.NewGameApp(cfg)
			if err != nil {
				return err
			}

			handler := gameapi.NewRouter(gameapi.RouterConfig{
				Logger:     logger,
				Controller: app.Controller,
				HubManager: app.HubManager,
			})
			return runServer(handler, sc, logger, app.HubManager.CloseAll)
		},
	}

	cmd.Flags().StringVarP(&sc.bind, "bind", "b", "", "Address to bind to (env: WORDDUEL_BIND)")
	cmd.Flags().IntVarP(&sc.port, "port", "p", DefaultGamePort, "Port to listen on (env: WORDDUEL_PORT)")
	cmd.Flags().StringVar(&sc.sessionURL, "session-url", "http://localhost:4002", "Session authority base URL (env: WORDDUEL_SESSION_URL)")
	cmd.Flags().StringVar(&sc.wordsPath, "words", "", "Word list file, one word per line (env: WORDDUEL_WORDS)")
	addStorageFlags(cmd, sc)
	bindEnv(cmd)

	return cmd
}

func newServeIdentityCmd() *cobra.Command {
	sc := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Run the identity service (handle to user id)",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sc.validate(); err != nil {
				return err
			}
			logger := newServiceLogger("identity")

			cfg, err := sc.factoryConfig(logger)
			if err != nil {
				return err
			}
			app, err := factory.NewIdentityApp(cfg)
			if err != nil {
				return err
			}

			handler := identityapi.NewRouter(identityapi.RouterConfig{
				Logger:  logger,
				Service: app.Service,
			})
			return runServer(handler, sc, logger, nil)
		},
	}

	cmd.Flags().StringVarP(&sc.bind, "bind", "b", "", "Address to bind to (env: WORDDUEL_BIND)")
	cmd.Flags().IntVarP(&sc.port, "port", "p", DefaultIdentityPort, "Port to listen on (env: WORDDUEL_PORT)")
	addStorageFlags(cmd, sc)
	bindEnv(cmd)

	return cmd
}

func newServiceLogger(service string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("service", service))
	slog.SetDefault(logger)
	return logger
}

// runServer starts the HTTP server and blocks until SIGINT/SIGTERM or a
// server error. The optional cleanup runs after the server drains.
func runServer(handler http.Handler, sc *serveConfig, logger *slog.Logger, cleanup func()) error {
	serverConfig := api.DefaultServerConfig(sc.port)
	serverConfig.Host = sc.bind
	server := api.NewServer(handler, serverConfig, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	if cleanup != nil {
		cleanup()
	}

	logger.Info("server stopped")
	return nil
}
