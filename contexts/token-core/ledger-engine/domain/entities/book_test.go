package entities

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
)

var (
	holderA = common.HexToAddress("0x0000000000000000000000000000000000000011")
	holderB = common.HexToAddress("0x0000000000000000000000000000000000000022")
	holderC = common.HexToAddress("0x0000000000000000000000000000000000000033")
)

func TestBookMintEnforcesCapExactly(t *testing.T) {
	book := NewBook(uint256.NewInt(1_000))

	if err := book.Mint(holderA, uint256.NewInt(1_000)); err != nil {
		t.Fatalf("mint to exact cap failed: %v", err)
	}
	err := book.Mint(holderA, uint256.NewInt(1))
	if !errors.Is(err, domainerrors.ErrSupplyCapExceeded) {
		t.Fatalf("expected ErrSupplyCapExceeded, got %v", err)
	}
	if got := book.TotalSupply(); !got.Eq(uint256.NewInt(1_000)) {
		t.Fatalf("rejected mint must not change supply, got %s", got.Dec())
	}
}

func TestBookMintOverflowRejected(t *testing.T) {
	book := NewBook(new(uint256.Int).SetAllOne())

	if err := book.Mint(holderA, new(uint256.Int).SetAllOne()); err != nil {
		t.Fatalf("mint to max failed: %v", err)
	}
	err := book.Mint(holderA, uint256.NewInt(1))
	if !errors.Is(err, domainerrors.ErrSupplyCapExceeded) {
		t.Fatalf("expected overflow rejection, got %v", err)
	}
}

func TestBookMoveFailsAtomically(t *testing.T) {
	book := NewBook(uint256.NewInt(1_000))
	if err := book.Mint(holderA, uint256.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	err := book.Move(holderA, holderB, uint256.NewInt(101))
	if !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := book.BalanceOf(holderA); !got.Eq(uint256.NewInt(100)) {
		t.Fatalf("expected debit side untouched, got %s", got.Dec())
	}
	if got := book.BalanceOf(holderB); !got.IsZero() {
		t.Fatalf("expected credit side untouched, got %s", got.Dec())
	}
}

func TestBookSelfTransferIsNeutral(t *testing.T) {
	book := NewBook(uint256.NewInt(1_000))
	if err := book.Mint(holderA, uint256.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := book.Move(holderA, holderA, uint256.NewInt(40)); err != nil {
		t.Fatalf("self transfer failed: %v", err)
	}
	if got := book.BalanceOf(holderA); !got.Eq(uint256.NewInt(100)) {
		t.Fatalf("expected balance preserved on self transfer, got %s", got.Dec())
	}
}

func TestBookConsumeAllowanceSkipsUnlimited(t *testing.T) {
	book := NewBook(uint256.NewInt(1_000))
	book.SetAllowance(holderA, holderB, Unlimited())

	if err := book.ConsumeAllowance(holderA, holderB, uint256.NewInt(999)); err != nil {
		t.Fatalf("consume against unlimited failed: %v", err)
	}
	if got := book.Allowance(holderA, holderB); !got.Eq(Unlimited()) {
		t.Fatalf("expected unlimited preserved, got %s", got.Dec())
	}
}

func TestBookConsumeAllowanceDecrementsToZero(t *testing.T) {
	book := NewBook(uint256.NewInt(1_000))
	book.SetAllowance(holderA, holderB, uint256.NewInt(50))

	if err := book.ConsumeAllowance(holderA, holderB, uint256.NewInt(50)); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if got := book.Allowance(holderA, holderB); !got.IsZero() {
		t.Fatalf("expected zero allowance, got %s", got.Dec())
	}
	err := book.ConsumeAllowance(holderA, holderB, uint256.NewInt(1))
	if !errors.Is(err, domainerrors.ErrInsufficientAllowance) {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}
}

func TestBookReadsReturnDefensiveCopies(t *testing.T) {
	book := NewBook(uint256.NewInt(1_000))
	if err := book.Mint(holderA, uint256.NewInt(100)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	leaked := book.BalanceOf(holderA)
	leaked.SetUint64(0)
	if got := book.BalanceOf(holderA); !got.Eq(uint256.NewInt(100)) {
		t.Fatalf("mutating a returned balance must not affect the book, got %s", got.Dec())
	}

	supply := book.TotalSupply()
	supply.SetUint64(0)
	if got := book.TotalSupply(); !got.Eq(uint256.NewInt(100)) {
		t.Fatalf("mutating a returned supply must not affect the book, got %s", got.Dec())
	}
}

func TestBookSumOfBalancesMatchesSupply(t *testing.T) {
	book := NewBook(uint256.NewInt(10_000))
	if err := book.Mint(holderA, uint256.NewInt(600)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := book.Move(holderA, holderB, uint256.NewInt(150)); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if err := book.Move(holderB, holderC, uint256.NewInt(50)); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if err := book.Burn(holderA, uint256.NewInt(100)); err != nil {
		t.Fatalf("burn failed: %v", err)
	}

	if sum, total := book.SumOfBalances(), book.TotalSupply(); !sum.Eq(total) {
		t.Fatalf("conservation broken: sum %s, supply %s", sum.Dec(), total.Dec())
	}
}

func TestBookNonceBumpIsMonotonic(t *testing.T) {
	book := NewBook(uint256.NewInt(1_000))

	if got := book.NonceOf(holderA); got != 0 {
		t.Fatalf("expected fresh nonce 0, got %d", got)
	}
	for i := uint64(1); i <= 3; i++ {
		book.BumpNonce(holderA)
		if got := book.NonceOf(holderA); got != i {
			t.Fatalf("expected nonce %d, got %d", i, got)
		}
	}
	if got := book.NonceOf(holderB); got != 0 {
		t.Fatalf("nonces are per address, got %d for untouched holder", got)
	}
}
