package application

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	"aurum/contexts/token-core/ledger-engine/ports"
	"aurum/internal/shared/eip712"
)

func signPermit(t *testing.T, key *ecdsa.PrivateKey, service *Service, owner common.Address, spender common.Address, value *uint256.Int, deadline uint64) ports.PermitInput {
	t.Helper()
	digest := eip712.PermitDigest(
		service.DomainSeparator(),
		owner,
		spender,
		value,
		service.Nonces(owner),
		deadline,
	)
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return ports.PermitInput{
		Owner:    owner,
		Spender:  spender,
		Value:    value,
		Deadline: deadline,
		V:        sig[64] + 27,
		R:        common.BytesToHash(sig[:32]),
		S:        common.BytesToHash(sig[32:64]),
	}
}

func TestPermitSetsAllowanceAndBumpsNonce(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)
	deadline := uint64(clock.Now().Unix()) + 3600
	input := signPermit(t, key, service, owner, spenderAddr, uint256.NewInt(777), deadline)

	if err := service.Permit(context.Background(), input); err != nil {
		t.Fatalf("permit failed: %v", err)
	}
	if got := service.Allowance(owner, spenderAddr); !got.Eq(uint256.NewInt(777)) {
		t.Fatalf("expected allowance 777, got %s", got.Dec())
	}
	if got := service.Nonces(owner); got != 1 {
		t.Fatalf("expected nonce 1 after permit, got %d", got)
	}
}

func TestPermitThenTransferFromSpendsGrant(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	holder := crypto.PubkeyToAddress(key.PublicKey)
	if err := service.Transfer(context.Background(), ownerAddr, ports.TransferInput{
		To:     holder,
		Amount: uint256.NewInt(100),
	}); err != nil {
		t.Fatalf("fund holder failed: %v", err)
	}

	deadline := uint64(clock.Now().Unix()) + 3600
	input := signPermit(t, key, service, holder, spenderAddr, uint256.NewInt(100), deadline)
	if err := service.Permit(context.Background(), input); err != nil {
		t.Fatalf("permit failed: %v", err)
	}

	if err := service.TransferFrom(context.Background(), spenderAddr, ports.TransferFromInput{
		Owner:  holder,
		To:     bobAddr,
		Amount: uint256.NewInt(100),
	}); err != nil {
		t.Fatalf("transfer-from against permit grant failed: %v", err)
	}
	if got := service.Allowance(holder, spenderAddr); !got.IsZero() {
		t.Fatalf("expected allowance fully spent, got %s", got.Dec())
	}
	if got := service.BalanceOf(bobAddr); !got.Eq(uint256.NewInt(100)) {
		t.Fatalf("expected bob balance 100, got %s", got.Dec())
	}
}

func TestPermitReplayRejected(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)
	deadline := uint64(clock.Now().Unix()) + 3600
	input := signPermit(t, key, service, owner, spenderAddr, uint256.NewInt(5), deadline)

	if err := service.Permit(context.Background(), input); err != nil {
		t.Fatalf("first permit failed: %v", err)
	}
	// The nonce advanced, so the same signature binds a stale message.
	if err := service.Permit(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature on replay, got %v", err)
	}
	if got := service.Nonces(owner); got != 1 {
		t.Fatalf("expected nonce unchanged by rejected replay, got %d", got)
	}
}

func TestPermitExpiredDeadline(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)
	deadline := uint64(clock.Now().Unix()) - 1
	input := signPermit(t, key, service, owner, spenderAddr, uint256.NewInt(5), deadline)

	if err := service.Permit(context.Background(), input); !errors.Is(err, domainerrors.ErrPermitExpired) {
		t.Fatalf("expected ErrPermitExpired, got %v", err)
	}
}

func TestPermitDeadlineBoundaryIsInclusive(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)
	deadline := uint64(clock.Now().Unix())
	input := signPermit(t, key, service, owner, spenderAddr, uint256.NewInt(5), deadline)

	if err := service.Permit(context.Background(), input); err != nil {
		t.Fatalf("permit exactly at deadline must succeed: %v", err)
	}
}

func TestPermitWrongSignerRejected(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	deadline := uint64(clock.Now().Unix()) + 3600
	// Signed by the generated key but claiming a different owner.
	input := signPermit(t, key, service, aliceAddr, spenderAddr, uint256.NewInt(5), deadline)

	if err := service.Permit(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if got := service.Allowance(aliceAddr, spenderAddr); !got.IsZero() {
		t.Fatalf("expected no allowance from forged permit, got %s", got.Dec())
	}
}

func TestPermitTamperedValueRejected(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)
	deadline := uint64(clock.Now().Unix()) + 3600
	input := signPermit(t, key, service, owner, spenderAddr, uint256.NewInt(5), deadline)
	input.Value = uint256.NewInt(5_000_000)

	if err := service.Permit(context.Background(), input); !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for tampered value, got %v", err)
	}
}

func TestPermitBlockedWhilePaused(t *testing.T) {
	service, _, clock := newTestService(t)

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key failed: %v", err)
	}
	owner := crypto.PubkeyToAddress(key.PublicKey)
	deadline := uint64(clock.Now().Unix()) + 3600
	input := signPermit(t, key, service, owner, spenderAddr, uint256.NewInt(5), deadline)

	if err := service.Pause(context.Background(), ownerAddr); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if err := service.Permit(context.Background(), input); !errors.Is(err, domainerrors.ErrContractPaused) {
		t.Fatalf("expected ErrContractPaused, got %v", err)
	}
}
