package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/wordduel/wordduel/internal/dependencies/clock"
	"github.com/wordduel/wordduel/internal/dependencies/random"
	"github.com/wordduel/wordduel/internal/game"
	"github.com/wordduel/wordduel/internal/identity"
	"github.com/wordduel/wordduel/internal/observer"
	"github.com/wordduel/wordduel/internal/remote"
	"github.com/wordduel/wordduel/internal/session"
	"github.com/wordduel/wordduel/internal/storage"
	"github.com/wordduel/wordduel/internal/storage/memory"
	redisstorage "github.com/wordduel/wordduel/internal/storage/redis"
	"github.com/wordduel/wordduel/internal/words"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds configuration shared by the service factories
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	// GameURL is the game authority's base URL (session authority only)
	GameURL string
	// SessionURL is the session authority's base URL (game authority only)
	SessionURL string
	// Attempts is the per-game wrong-guess budget (0 means default)
	Attempts int
	// WordsPath is an optional word list file; if empty the built-in list
	// is used (game authority only)
	WordsPath string
}

// SessionApp contains the wired session authority components
type SessionApp struct {
	Storage    storage.Storage
	Clock      clock.Clock
	Controller *session.Controller
}

// GameApp contains the wired game authority components
type GameApp struct {
	Storage     storage.Storage
	Clock       clock.Clock
	Random      random.Random
	WordService *words.Service
	HubManager  *observer.HubManager
	Controller  *game.Controller
}

// IdentityApp contains the wired identity service components
type IdentityApp struct {
	Storage storage.Storage
	Clock   clock.Clock
	Service *identity.Service
}

// NewSessionApp wires a session authority
func NewSessionApp(cfg Config) (*SessionApp, error) {
	logger := orNopLogger(cfg.Logger)

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.GameURL == "" {
		return nil, errors.New("GameURL is required for the session authority")
	}

	clk := clock.New()
	controller := session.NewController(store, remote.NewGameClient(cfg.GameURL), clk, cfg.Attempts, logger)

	return &SessionApp{
		Storage:    store,
		Clock:      clk,
		Controller: controller,
	}, nil
}

// NewGameApp wires a game authority
func NewGameApp(cfg Config) (*GameApp, error) {
	logger := orNopLogger(cfg.Logger)

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.SessionURL == "" {
		return nil, errors.New("SessionURL is required for the game authority")
	}

	clk := clock.New()
	rnd := random.New()

	wordService := words.New(rnd)
	if cfg.WordsPath != "" {
		if err := wordService.LoadFromFile(cfg.WordsPath); err != nil {
			return nil, err
		}
	}

	hubManager := observer.NewHubManager(logger)
	controller := game.NewController(store, wordService, remote.NewSessionClient(cfg.SessionURL), hubManager, clk, logger)

	return &GameApp{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		WordService: wordService,
		HubManager:  hubManager,
		Controller:  controller,
	}, nil
}

// NewIdentityApp wires an identity service
func NewIdentityApp(cfg Config) (*IdentityApp, error) {
	logger := orNopLogger(cfg.Logger)

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.New()

	return &IdentityApp{
		Storage: store,
		Clock:   clk,
		Service: identity.New(store, clk, logger),
	}, nil
}

func orNopLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return logger
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}
}
