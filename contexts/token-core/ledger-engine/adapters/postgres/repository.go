package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"aurum/contexts/token-core/ledger-engine/domain/entities"
	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	"aurum/contexts/token-core/ledger-engine/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository persists the transfer audit log and the event outbox. The
// engine state itself stays in memory; these tables only mirror committed
// operations.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&transferModel{}, &outboxModel{})
}

func (r *Repository) AppendTransfer(ctx context.Context, record entities.TransferRecord) error {
	row := transferModelFromEntity(record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			// Replayed append of the same record is a no-op.
			return nil
		}
		return err
	}
	return nil
}

func (r *Repository) ListTransfersByAddress(ctx context.Context, addr common.Address, limit int, offset int) ([]entities.TransferRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	hex := addr.Hex()
	var rows []transferModel
	err := r.db.WithContext(ctx).
		Where("from_address = ? OR to_address = ? OR caller_address = ?", hex, hex, hex).
		Order("occurred_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.TransferRecord, 0, len(rows))
	for _, row := range rows {
		entity, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, entity)
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}

	row := outboxModel{
		OutboxID:     outboxID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	published := publishedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &published,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTransferNotFound
	}
	return nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func transferModelFromEntity(record entities.TransferRecord) transferModel {
	amount := "0"
	if record.Amount != nil {
		amount = record.Amount.Dec()
	}
	transferID := strings.TrimSpace(record.TransferID)
	if transferID == "" {
		transferID = uuid.NewString()
	}
	return transferModel{
		TransferID:    transferID,
		Kind:          string(record.Kind),
		CallerAddress: record.Caller.Hex(),
		FromAddress:   record.From.Hex(),
		ToAddress:     record.To.Hex(),
		Amount:        amount,
		OccurredAt:    record.OccurredAt.UTC(),
	}
}

func (m transferModel) toEntity() (entities.TransferRecord, error) {
	amount, err := uint256.FromDecimal(m.Amount)
	if err != nil {
		return entities.TransferRecord{}, err
	}
	return entities.TransferRecord{
		TransferID: m.TransferID,
		Kind:       entities.TransferKind(m.Kind),
		Caller:     common.HexToAddress(m.CallerAddress),
		From:       common.HexToAddress(m.FromAddress),
		To:         common.HexToAddress(m.ToAddress),
		Amount:     amount,
		OccurredAt: m.OccurredAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
