package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type TransferKind string

const (
	TransferKindTransfer     TransferKind = "transfer"
	TransferKindTransferFrom TransferKind = "transfer_from"
	TransferKindMint         TransferKind = "mint"
	TransferKindBurn         TransferKind = "burn"
	TransferKindEmergency    TransferKind = "emergency_transfer"
)

// TransferRecord is the audit entry appended for every balance movement.
// It mirrors committed engine state and is never the source of truth.
type TransferRecord struct {
	TransferID string
	Kind       TransferKind
	Caller     common.Address
	From       common.Address
	To         common.Address
	Amount     *uint256.Int
	OccurredAt time.Time
}
