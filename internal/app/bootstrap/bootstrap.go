package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	ledgerengine "aurum/contexts/token-core/ledger-engine"
	postgresadapter "aurum/contexts/token-core/ledger-engine/adapters/postgres"
	"aurum/contexts/token-core/ledger-engine/application/workers"
	"aurum/contexts/token-core/ledger-engine/ports"
	"aurum/internal/platform/config"
	"aurum/internal/platform/db"
	"aurum/internal/platform/httpserver"
	"aurum/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func (a *APIApp) Run() error {
	return a.server.Start()
}

func (a *APIApp) Close() error {
	return a.postgres.Close()
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        workers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	token, err := tokenConfigFromEnv(cfg)
	if err != nil {
		return nil, err
	}

	var pg *db.Postgres
	var module ledgerengine.Module
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repo := postgresadapter.NewRepository(pg.DB, logger)
		if err := repo.Migrate(); err != nil {
			_ = pg.Close()
			return nil, err
		}
		module, err = ledgerengine.NewModule(ledgerengine.Dependencies{
			Token:       token,
			Audit:       repo,
			Outbox:      repo,
			Clock:       postgresadapter.SystemClock{},
			IDGenerator: postgresadapter.UUIDGenerator{},
			Logger:      logger,
		})
	} else {
		module, err = ledgerengine.NewInMemoryModule(token, logger)
	}
	if err != nil {
		if pg != nil {
			_ = pg.Close()
		}
		return nil, err
	}

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		relay: workers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			Topic:     "token.events",
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.relay.RunOnce(ctx); err != nil {
				w.logger.Error("outbox relay cycle failed",
					"event", "worker_relay_cycle_failed",
					"module", "internal/app/bootstrap",
					"layer", "worker",
					"error", err.Error(),
				)
			}
		}
	}
}

func (w *WorkerApp) Close() error {
	return w.postgres.Close()
}

func tokenConfigFromEnv(cfg config.Config) (ports.TokenConfig, error) {
	if !common.IsHexAddress(cfg.OwnerAddress) {
		return ports.TokenConfig{}, errors.New("OWNER_ADDRESS must be a hex address")
	}
	owner := common.HexToAddress(cfg.OwnerAddress)

	holder := owner
	if strings.TrimSpace(cfg.InitialHolder) != "" {
		if !common.IsHexAddress(cfg.InitialHolder) {
			return ports.TokenConfig{}, errors.New("INITIAL_HOLDER must be a hex address")
		}
		holder = common.HexToAddress(cfg.InitialHolder)
	}

	contract := common.Address{}
	if strings.TrimSpace(cfg.ContractAddress) != "" {
		if !common.IsHexAddress(cfg.ContractAddress) {
			return ports.TokenConfig{}, errors.New("CONTRACT_ADDRESS must be a hex address")
		}
		contract = common.HexToAddress(cfg.ContractAddress)
	}

	initialSupply, err := uint256.FromDecimal(cfg.InitialSupply)
	if err != nil {
		return ports.TokenConfig{}, fmt.Errorf("parse INITIAL_SUPPLY: %w", err)
	}
	maxSupply, err := uint256.FromDecimal(cfg.MaxSupply)
	if err != nil {
		return ports.TokenConfig{}, fmt.Errorf("parse MAX_SUPPLY: %w", err)
	}
	dailyLimit, err := uint256.FromDecimal(cfg.DailyMintLimit)
	if err != nil {
		return ports.TokenConfig{}, fmt.Errorf("parse DAILY_MINT_LIMIT: %w", err)
	}

	return ports.TokenConfig{
		Name:            cfg.TokenName,
		Symbol:          cfg.TokenSymbol,
		Decimals:        cfg.TokenDecimals,
		ChainID:         cfg.ChainID,
		ContractAddress: contract,
		Owner:           owner,
		InitialHolder:   holder,
		InitialSupply:   initialSupply,
		MaxSupply:       maxSupply,
		DailyMintLimit:  dailyLimit,
	}, nil
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
