package entities

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
)

func TestAccessListRolesAreIndependent(t *testing.T) {
	list := NewAccessList()
	addr := common.HexToAddress("0x0000000000000000000000000000000000000044")

	list.GrantMinter(addr)
	list.Blacklist(addr)
	if !list.IsMinter(addr) || !list.IsBlacklisted(addr) {
		t.Fatal("minter role and blacklist status must coexist")
	}

	list.Unblacklist(addr)
	if !list.IsMinter(addr) {
		t.Fatal("unblacklisting must not touch the minter role")
	}
	list.RevokeMinter(addr)
	if list.IsMinter(addr) {
		t.Fatal("expected minter role revoked")
	}
}

func TestAccessListOperationsAreIdempotent(t *testing.T) {
	list := NewAccessList()
	addr := common.HexToAddress("0x0000000000000000000000000000000000000055")

	list.GrantMinter(addr)
	list.GrantMinter(addr)
	if !list.IsMinter(addr) {
		t.Fatal("expected minter after repeated grant")
	}
	list.RevokeMinter(addr)
	list.RevokeMinter(addr)
	if list.IsMinter(addr) {
		t.Fatal("expected no minter after repeated revoke")
	}
	list.Unblacklist(addr)
	if list.IsBlacklisted(addr) {
		t.Fatal("unblacklist of a clean address must stay clean")
	}
}

func TestOperationalFlagsRejectRedundantTransitions(t *testing.T) {
	var flags OperationalFlags

	if err := flags.Unpause(); !errors.Is(err, domainerrors.ErrAlreadyUnpaused) {
		t.Fatalf("expected ErrAlreadyUnpaused, got %v", err)
	}
	if err := flags.Pause(); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if err := flags.Pause(); !errors.Is(err, domainerrors.ErrAlreadyPaused) {
		t.Fatalf("expected ErrAlreadyPaused, got %v", err)
	}
	if err := flags.Unpause(); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}

	if err := flags.DeactivateEmergencyMode(); !errors.Is(err, domainerrors.ErrNotInEmergencyMode) {
		t.Fatalf("expected ErrNotInEmergencyMode, got %v", err)
	}
	if err := flags.ActivateEmergencyMode(); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if err := flags.ActivateEmergencyMode(); !errors.Is(err, domainerrors.ErrAlreadyInEmergencyMode) {
		t.Fatalf("expected ErrAlreadyInEmergencyMode, got %v", err)
	}
}

func TestOperationalFlagsAreIndependent(t *testing.T) {
	var flags OperationalFlags

	if err := flags.Pause(); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if err := flags.ActivateEmergencyMode(); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if !flags.Paused() || !flags.EmergencyMode() {
		t.Fatal("both flags must hold simultaneously")
	}
	if err := flags.Unpause(); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if !flags.EmergencyMode() {
		t.Fatal("unpausing must not clear emergency mode")
	}
}
