package ledgerengine

import (
	"log/slog"

	httpadapter "aurum/contexts/token-core/ledger-engine/adapters/http"
	"aurum/contexts/token-core/ledger-engine/adapters/memory"
	"aurum/contexts/token-core/ledger-engine/application"
	"aurum/contexts/token-core/ledger-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service *application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Token       ports.TokenConfig
	Audit       ports.TransferLog
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) (Module, error) {
	service, err := application.NewService(deps.Token, application.Dependencies{
		Audit:  deps.Audit,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	})
	if err != nil {
		return Module{}, err
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}, nil
}

func NewInMemoryModule(token ports.TokenConfig, logger *slog.Logger) (Module, error) {
	store := memory.NewStore()
	module, err := NewModule(Dependencies{
		Token:       token,
		Audit:       store,
		Outbox:      store,
		Clock:       memory.SystemClock{},
		IDGenerator: memory.UUIDGenerator{},
		Logger:      logger,
	})
	if err != nil {
		return Module{}, err
	}
	module.Store = store
	return module, nil
}
