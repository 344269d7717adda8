package application

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"aurum/contexts/token-core/ledger-engine/domain/entities"
	"aurum/contexts/token-core/ledger-engine/ports"
)

// Read accessors are side-effect free and observe the most recently
// committed state. Window-derived values reflect the window as of the read:
// once the 24h span has elapsed the full limit reports as available even
// before the next mint resets the counter.

func (s *Service) TokenInfo() ports.TokenView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	return ports.TokenView{
		Name:                s.name,
		Symbol:              s.symbol,
		Decimals:            s.decimals,
		TotalSupply:         s.book.TotalSupply(),
		MaxSupply:           s.book.MaxSupply(),
		Owner:               s.owner,
		Paused:              s.flags.Paused(),
		EmergencyMode:       s.flags.EmergencyMode(),
		DailyMintLimit:      s.window.DailyLimit(),
		DailyMinted:         s.window.Minted(now),
		RemainingDailyLimit: s.window.Remaining(now),
		DomainSeparator:     s.separator,
	}
}

func (s *Service) Account(addr common.Address) ports.AccountView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ports.AccountView{
		Address:       addr,
		Balance:       s.book.BalanceOf(addr),
		Nonce:         s.book.NonceOf(addr),
		IsMinter:      s.access.IsMinter(addr),
		IsBlacklisted: s.access.IsBlacklisted(addr),
	}
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) Symbol() string {
	return s.symbol
}

func (s *Service) Decimals() uint8 {
	return s.decimals
}

func (s *Service) Owner() common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

func (s *Service) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.Paused()
}

func (s *Service) EmergencyMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.EmergencyMode()
}

func (s *Service) TotalSupply() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.TotalSupply()
}

func (s *Service) MaxSupply() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.MaxSupply()
}

func (s *Service) BalanceOf(addr common.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.BalanceOf(addr)
}

func (s *Service) Allowance(owner common.Address, spender common.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Allowance(owner, spender)
}

func (s *Service) Nonces(addr common.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.NonceOf(addr)
}

func (s *Service) IsMinter(addr common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.IsMinter(addr)
}

func (s *Service) IsBlacklisted(addr common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access.IsBlacklisted(addr)
}

func (s *Service) DailyMinted() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Minted(s.now())
}

func (s *Service) RemainingDailyLimit() *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Remaining(s.now())
}

func (s *Service) DomainSeparator() common.Hash {
	return s.separator
}

func (s *Service) ListTransfers(ctx context.Context, addr common.Address, limit int, offset int) ([]entities.TransferRecord, error) {
	if s.Audit == nil {
		return []entities.TransferRecord{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Audit.ListTransfersByAddress(ctx, addr, limit, offset)
}
