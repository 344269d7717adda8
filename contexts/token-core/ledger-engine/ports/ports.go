package ports

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"aurum/contexts/token-core/ledger-engine/domain/entities"
	contractsv1 "aurum/contracts/gen/events/v1"
)

// TokenConfig is the deployment-equivalent initialization of one engine
// instance. All fields are fixed for the life of the instance.
type TokenConfig struct {
	Name            string
	Symbol          string
	Decimals        uint8
	ChainID         uint64
	ContractAddress common.Address
	Owner           common.Address
	InitialHolder   common.Address
	InitialSupply   *uint256.Int
	MaxSupply       *uint256.Int
	DailyMintLimit  *uint256.Int
}

type TransferInput struct {
	To     common.Address
	Amount *uint256.Int
}

type ApproveInput struct {
	Spender common.Address
	Amount  *uint256.Int
}

type TransferFromInput struct {
	Owner  common.Address
	To     common.Address
	Amount *uint256.Int
}

type MintInput struct {
	To     common.Address
	Amount *uint256.Int
}

type BurnInput struct {
	Amount *uint256.Int
}

type PermitInput struct {
	Owner    common.Address
	Spender  common.Address
	Value    *uint256.Int
	Deadline uint64
	V        uint8
	R        common.Hash
	S        common.Hash
}

type EmergencyTransferInput struct {
	From   common.Address
	To     common.Address
	Amount *uint256.Int
}

// TokenView is the aggregate read model exposed by the engine.
type TokenView struct {
	Name                string
	Symbol              string
	Decimals            uint8
	TotalSupply         *uint256.Int
	MaxSupply           *uint256.Int
	Owner               common.Address
	Paused              bool
	EmergencyMode       bool
	DailyMintLimit      *uint256.Int
	DailyMinted         *uint256.Int
	RemainingDailyLimit *uint256.Int
	DomainSeparator     common.Hash
}

type AccountView struct {
	Address       common.Address
	Balance       *uint256.Int
	Nonce         uint64
	IsMinter      bool
	IsBlacklisted bool
}

type TransferLog interface {
	AppendTransfer(ctx context.Context, record entities.TransferRecord) error
	ListTransfersByAddress(ctx context.Context, addr common.Address, limit int, offset int) ([]entities.TransferRecord, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
