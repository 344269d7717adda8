package application

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"aurum/contexts/token-core/ledger-engine/domain/entities"
	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	"aurum/contexts/token-core/ledger-engine/ports"
)

func eventTypeForKind(kind entities.TransferKind) string {
	switch kind {
	case entities.TransferKindMint:
		return "token.minted"
	case entities.TransferKindBurn:
		return "token.burned"
	case entities.TransferKindEmergency:
		return "token.emergency_transferred"
	default:
		return "token.transferred"
	}
}

// Transfer moves amount from the caller to input.To.
func (s *Service) Transfer(ctx context.Context, caller common.Address, input ports.TransferInput) error {
	if err := requireAmount(input.Amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := requireNonZeroAddress(input.To); err != nil {
		return err
	}
	if err := s.requireNotBlacklisted(caller, input.To); err != nil {
		return err
	}
	if err := s.book.Move(caller, input.To, input.Amount); err != nil {
		return err
	}

	now := s.now()
	s.recordTransfer(ctx, entities.TransferKindTransfer, caller, caller, input.To, input.Amount, now)
	resolveLogger(s.Logger).Info("tokens transferred",
		"event", "token_transferred",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"from", caller.Hex(),
		"to", input.To.Hex(),
		"amount", input.Amount.Dec(),
	)
	return nil
}

// Approve overwrites the caller's allowance for input.Spender.
func (s *Service) Approve(ctx context.Context, caller common.Address, input ports.ApproveInput) error {
	if err := requireAmount(input.Amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := requireNonZeroAddress(input.Spender); err != nil {
		return err
	}
	if err := s.requireNotBlacklisted(caller, input.Spender); err != nil {
		return err
	}
	s.book.SetAllowance(caller, input.Spender, input.Amount)

	now := s.now()
	s.appendEvent(ctx, "token.approved", caller.Hex(), map[string]any{
		"owner":   caller.Hex(),
		"spender": input.Spender.Hex(),
		"amount":  input.Amount.Dec(),
	}, now)
	resolveLogger(s.Logger).Info("allowance approved",
		"event", "token_approved",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"owner", caller.Hex(),
		"spender", input.Spender.Hex(),
		"amount", input.Amount.Dec(),
	)
	return nil
}

// TransferFrom spends the caller's allowance from input.Owner and moves the
// amount to input.To. Both the allowance and the balance are validated
// before either is touched, so a rejection never leaves a partial update.
func (s *Service) TransferFrom(ctx context.Context, caller common.Address, input ports.TransferFromInput) error {
	if err := requireAmount(input.Amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := requireNonZeroAddress(input.To); err != nil {
		return err
	}
	if err := s.requireNotBlacklisted(caller, input.Owner, input.To); err != nil {
		return err
	}
	if s.book.Allowance(input.Owner, caller).Lt(input.Amount) {
		return domainerrors.ErrInsufficientAllowance
	}
	if s.book.BalanceOf(input.Owner).Lt(input.Amount) {
		return domainerrors.ErrInsufficientBalance
	}
	if err := s.book.ConsumeAllowance(input.Owner, caller, input.Amount); err != nil {
		return err
	}
	if err := s.book.Move(input.Owner, input.To, input.Amount); err != nil {
		return err
	}

	now := s.now()
	s.recordTransfer(ctx, entities.TransferKindTransferFrom, caller, input.Owner, input.To, input.Amount, now)
	resolveLogger(s.Logger).Info("tokens transferred by spender",
		"event", "token_transferred_from",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"spender", caller.Hex(),
		"owner", input.Owner.Hex(),
		"to", input.To.Hex(),
		"amount", input.Amount.Dec(),
	)
	return nil
}

// Mint creates new supply for input.To. The caller must hold the minter
// role; the supply ceiling is validated before the daily window is consumed
// so a cap rejection never burns quota.
func (s *Service) Mint(ctx context.Context, caller common.Address, input ports.MintInput) error {
	if err := requireAmount(input.Amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := requireNonZeroAddress(input.To); err != nil {
		return err
	}
	if err := s.requireNotBlacklisted(caller, input.To); err != nil {
		return err
	}
	if err := s.requireMinter(caller); err != nil {
		return err
	}

	projected := s.book.TotalSupply()
	if _, overflow := projected.AddOverflow(projected, input.Amount); overflow {
		return domainerrors.ErrSupplyCapExceeded
	}
	if projected.Gt(s.book.MaxSupply()) {
		return domainerrors.ErrSupplyCapExceeded
	}

	now := s.now()
	if err := s.window.CheckAndConsume(input.Amount, now); err != nil {
		return err
	}
	if err := s.book.Mint(input.To, input.Amount); err != nil {
		return err
	}

	s.recordTransfer(ctx, entities.TransferKindMint, caller, common.Address{}, input.To, input.Amount, now)
	resolveLogger(s.Logger).Info("tokens minted",
		"event", "token_minted",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"minter", caller.Hex(),
		"to", input.To.Hex(),
		"amount", input.Amount.Dec(),
		"daily_minted", s.window.Minted(now).Dec(),
	)
	return nil
}

// Burn destroys amount from the caller's balance.
func (s *Service) Burn(ctx context.Context, caller common.Address, input ports.BurnInput) error {
	if err := requireAmount(input.Amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := s.requireNotBlacklisted(caller); err != nil {
		return err
	}
	if err := s.book.Burn(caller, input.Amount); err != nil {
		return err
	}

	now := s.now()
	s.recordTransfer(ctx, entities.TransferKindBurn, caller, caller, common.Address{}, input.Amount, now)
	resolveLogger(s.Logger).Info("tokens burned",
		"event", "token_burned",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"owner", caller.Hex(),
		"amount", input.Amount.Dec(),
	)
	return nil
}

// EmergencyTransfer force-moves funds while emergency mode is active. It is
// owner-only, works regardless of the pause flag, and bypasses allowances
// and the blacklist status of the source. The destination blacklist still
// applies: recovered funds must not land on a blocked address.
func (s *Service) EmergencyTransfer(ctx context.Context, caller common.Address, input ports.EmergencyTransferInput) error {
	if err := requireAmount(input.Amount); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if !s.flags.EmergencyMode() {
		return domainerrors.ErrNotInEmergencyMode
	}
	if err := requireNonZeroAddress(input.To); err != nil {
		return err
	}
	if err := s.requireNotBlacklisted(input.To); err != nil {
		return err
	}
	if err := s.book.Move(input.From, input.To, input.Amount); err != nil {
		return err
	}

	now := s.now()
	s.recordTransfer(ctx, entities.TransferKindEmergency, caller, input.From, input.To, input.Amount, now)
	resolveLogger(s.Logger).Warn("emergency transfer executed",
		"event", "token_emergency_transferred",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"admin", caller.Hex(),
		"from", input.From.Hex(),
		"to", input.To.Hex(),
		"amount", input.Amount.Dec(),
	)
	return nil
}
