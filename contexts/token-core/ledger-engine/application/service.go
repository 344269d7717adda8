package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"aurum/contexts/token-core/ledger-engine/domain/entities"
	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	"aurum/contexts/token-core/ledger-engine/ports"
	"aurum/internal/shared/eip712"
)

// Service is the token ledger engine. It owns all mutable state behind a
// single mutex: every mutating operation is atomic and totally ordered, and
// that order is the source of truth for nonce assignment, daily-limit
// consumption and balance changes.
//
// Dispatch order for token mutations: operational gate, then access checks,
// then the rate limiter (mint only), then the ledger mutation. A failed
// operation leaves no partial state behind.
type Service struct {
	mu sync.Mutex

	name      string
	symbol    string
	decimals  uint8
	owner     common.Address
	separator common.Hash

	book   *entities.Book
	window *entities.MintWindow
	access *entities.AccessList
	flags  entities.OperationalFlags

	Audit  ports.TransferLog
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type Dependencies struct {
	Audit  ports.TransferLog
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// NewService initializes an engine instance: the owner becomes the first
// minter and the initial supply is credited to the initial holder, capped by
// the maximum supply and exempt from the daily mint window.
func NewService(cfg ports.TokenConfig, deps Dependencies) (*Service, error) {
	if cfg.Owner == (common.Address{}) {
		return nil, domainerrors.ErrZeroAddress
	}
	if cfg.MaxSupply == nil || cfg.MaxSupply.IsZero() {
		return nil, domainerrors.ErrInvalidAmount
	}
	if cfg.DailyMintLimit == nil {
		return nil, domainerrors.ErrInvalidAmount
	}

	s := &Service{
		name:     cfg.Name,
		symbol:   cfg.Symbol,
		decimals: cfg.Decimals,
		owner:    cfg.Owner,
		separator: eip712.Domain{
			Name:              cfg.Name,
			Version:           "1",
			ChainID:           cfg.ChainID,
			VerifyingContract: cfg.ContractAddress,
		}.Separator(),
		book:   entities.NewBook(cfg.MaxSupply),
		access: entities.NewAccessList(),
		Audit:  deps.Audit,
		Outbox: deps.Outbox,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	s.window = entities.NewMintWindow(cfg.DailyMintLimit, s.now())
	s.access.GrantMinter(cfg.Owner)

	if cfg.InitialSupply != nil && !cfg.InitialSupply.IsZero() {
		holder := cfg.InitialHolder
		if holder == (common.Address{}) {
			holder = cfg.Owner
		}
		if err := s.book.Mint(holder, cfg.InitialSupply); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

// Callers hold s.mu for every guard below; the guards only read state.

func (s *Service) requireNotPaused() error {
	if s.flags.Paused() {
		return domainerrors.ErrContractPaused
	}
	return nil
}

func (s *Service) requireOwner(caller common.Address) error {
	if caller != s.owner {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (s *Service) requireMinter(caller common.Address) error {
	if !s.access.IsMinter(caller) {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

func (s *Service) requireNotBlacklisted(participants ...common.Address) error {
	for _, addr := range participants {
		if s.access.IsBlacklisted(addr) {
			return domainerrors.ErrAddressBlacklisted
		}
	}
	return nil
}

func requireAmount(amount *uint256.Int) error {
	if amount == nil {
		return domainerrors.ErrInvalidAmount
	}
	return nil
}

func requireNonZeroAddress(addr common.Address) error {
	if addr == (common.Address{}) {
		return domainerrors.ErrZeroAddress
	}
	return nil
}

// recordTransfer appends the audit record and the matching outbox event for
// a committed balance movement. The engine state is already the source of
// truth here: failures are logged and do not roll anything back.
func (s *Service) recordTransfer(
	ctx context.Context,
	kind entities.TransferKind,
	caller common.Address,
	from common.Address,
	to common.Address,
	amount *uint256.Int,
	now time.Time,
) {
	logger := resolveLogger(s.Logger)

	transferID := s.newID(ctx)
	if s.Audit != nil {
		record := entities.TransferRecord{
			TransferID: transferID,
			Kind:       kind,
			Caller:     caller,
			From:       from,
			To:         to,
			Amount:     new(uint256.Int).Set(amount),
			OccurredAt: now,
		}
		if err := s.Audit.AppendTransfer(ctx, record); err != nil {
			logger.Error("transfer audit append failed",
				"event", "token_audit_append_failed",
				"module", "token-core/ledger-engine",
				"layer", "application",
				"transfer_id", transferID,
				"error", err.Error(),
			)
		}
	}

	s.appendEvent(ctx, eventTypeForKind(kind), from.Hex(), map[string]any{
		"transfer_id": transferID,
		"kind":        string(kind),
		"caller":      caller.Hex(),
		"from":        from.Hex(),
		"to":          to.Hex(),
		"amount":      amount.Dec(),
	}, now)
}

// appendEvent writes one canonical envelope to the outbox. Best effort: the
// engine never fails an operation because the audit trail lagged.
func (s *Service) appendEvent(
	ctx context.Context,
	eventType string,
	partitionKey string,
	data map[string]any,
	now time.Time,
) {
	if s.Outbox == nil {
		return
	}
	logger := resolveLogger(s.Logger)

	payload, err := json.Marshal(data)
	if err != nil {
		logger.Error("event payload encode failed",
			"event", "token_event_encode_failed",
			"module", "token-core/ledger-engine",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}

	eventID := s.newID(ctx)
	envelope := ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       now,
		SourceService:    "ledger-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "from",
		PartitionKey:     partitionKey,
		Data:             payload,
	}
	if err := s.Outbox.AppendOutbox(ctx, envelope); err != nil {
		logger.Error("outbox append failed",
			"event", "token_outbox_append_failed",
			"module", "token-core/ledger-engine",
			"layer", "application",
			"event_type", eventType,
			"event_id", eventID,
			"error", err.Error(),
		)
	}
}

func (s *Service) newID(ctx context.Context) string {
	if s.IDGen == nil {
		return ""
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ""
	}
	return id
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
