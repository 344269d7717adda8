package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"aurum/contexts/token-core/ledger-engine/domain/entities"
	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	"aurum/contexts/token-core/ledger-engine/ports"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Store is the in-memory transfer log and outbox, plus the default clock and
// id generator. It backs tests and single-process deployments.
type Store struct {
	mu sync.RWMutex

	transfers []entities.TransferRecord
	outbox    map[string]outboxRecord
	order     []string
}

type outboxRecord struct {
	Message     ports.OutboxMessage
	Status      string
	PublishedAt *time.Time
}

func NewStore() *Store {
	return &Store{
		outbox: make(map[string]outboxRecord),
	}
}

func (s *Store) AppendTransfer(_ context.Context, record entities.TransferRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(record.TransferID) == "" {
		record.TransferID = uuid.NewString()
	}
	if record.Amount == nil {
		record.Amount = uint256.NewInt(0)
	}
	s.transfers = append(s.transfers, record)
	return nil
}

func (s *Store) ListTransfersByAddress(_ context.Context, addr common.Address, limit int, offset int) ([]entities.TransferRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items := make([]entities.TransferRecord, 0)
	for _, record := range s.transfers {
		if record.From == addr || record.To == addr || record.Caller == addr {
			items = append(items, record)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})
	if offset >= len(items) {
		return []entities.TransferRecord{}, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return append([]entities.TransferRecord(nil), items[offset:end]...), nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
		envelope.EventID = outboxID
	}
	if _, exists := s.outbox[outboxID]; exists {
		return nil
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.outbox[outboxID] = outboxRecord{
		Message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
		Status: outboxStatusPending,
	}
	s.order = append(s.order, outboxID)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, outboxID := range s.order {
		record, ok := s.outbox[outboxID]
		if !ok || record.Status != outboxStatusPending {
			continue
		}
		items = append(items, record.Message)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrTransferNotFound
	}
	published := publishedAt.UTC()
	record.Status = outboxStatusPublished
	record.PublishedAt = &published
	s.outbox[strings.TrimSpace(outboxID)] = record
	return nil
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
