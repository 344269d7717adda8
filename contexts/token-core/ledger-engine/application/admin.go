package application

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Administrative controls are owner-only and intentionally exempt from the
// pause gate: pausing must never lock the operator out of unpausing, role
// management or emergency handling.

func (s *Service) Pause(ctx context.Context, caller common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := s.flags.Pause(); err != nil {
		return err
	}
	s.emitAdminEvent(ctx, "token.paused", caller, nil)
	return nil
}

func (s *Service) Unpause(ctx context.Context, caller common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := s.flags.Unpause(); err != nil {
		return err
	}
	s.emitAdminEvent(ctx, "token.unpaused", caller, nil)
	return nil
}

func (s *Service) ActivateEmergencyMode(ctx context.Context, caller common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := s.flags.ActivateEmergencyMode(); err != nil {
		return err
	}
	s.emitAdminEvent(ctx, "token.emergency_activated", caller, nil)
	return nil
}

func (s *Service) DeactivateEmergencyMode(ctx context.Context, caller common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := s.flags.DeactivateEmergencyMode(); err != nil {
		return err
	}
	s.emitAdminEvent(ctx, "token.emergency_deactivated", caller, nil)
	return nil
}

// AddMinter grants the minter role. Granting an existing minter is a no-op
// success; same for RemoveMinter on an absent one.
func (s *Service) AddMinter(ctx context.Context, caller common.Address, addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := requireNonZeroAddress(addr); err != nil {
		return err
	}
	s.access.GrantMinter(addr)
	s.emitAdminEvent(ctx, "token.minter_granted", caller, &addr)
	return nil
}

func (s *Service) RemoveMinter(ctx context.Context, caller common.Address, addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := requireNonZeroAddress(addr); err != nil {
		return err
	}
	s.access.RevokeMinter(addr)
	s.emitAdminEvent(ctx, "token.minter_revoked", caller, &addr)
	return nil
}

func (s *Service) Blacklist(ctx context.Context, caller common.Address, addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := requireNonZeroAddress(addr); err != nil {
		return err
	}
	s.access.Blacklist(addr)
	s.emitAdminEvent(ctx, "token.blacklisted", caller, &addr)
	return nil
}

func (s *Service) Unblacklist(ctx context.Context, caller common.Address, addr common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := requireNonZeroAddress(addr); err != nil {
		return err
	}
	s.access.Unblacklist(addr)
	s.emitAdminEvent(ctx, "token.unblacklisted", caller, &addr)
	return nil
}

// TransferOwnership replaces the single privileged address.
func (s *Service) TransferOwnership(ctx context.Context, caller common.Address, newOwner common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := requireNonZeroAddress(newOwner); err != nil {
		return err
	}
	s.owner = newOwner
	s.emitAdminEvent(ctx, "token.ownership_transferred", caller, &newOwner)
	return nil
}

func (s *Service) emitAdminEvent(ctx context.Context, eventType string, caller common.Address, subject *common.Address) {
	now := s.now()
	data := map[string]any{
		"caller": caller.Hex(),
	}
	partition := caller.Hex()
	if subject != nil {
		data["address"] = subject.Hex()
		partition = subject.Hex()
	}
	s.appendEvent(ctx, eventType, partition, data, now)
	resolveLogger(s.Logger).Info("admin operation applied",
		"event", "token_admin_operation",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"operation", eventType,
		"caller", caller.Hex(),
	)
}
