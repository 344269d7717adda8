package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
)

func TestWindowConsumesUpToLimit(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	window := NewMintWindow(uint256.NewInt(100), start)

	if err := window.CheckAndConsume(uint256.NewInt(60), start); err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if err := window.CheckAndConsume(uint256.NewInt(40), start.Add(time.Hour)); err != nil {
		t.Fatalf("consume to exact limit failed: %v", err)
	}
	err := window.CheckAndConsume(uint256.NewInt(1), start.Add(2*time.Hour))
	if !errors.Is(err, domainerrors.ErrDailyLimitExceeded) {
		t.Fatalf("expected ErrDailyLimitExceeded, got %v", err)
	}
	if got := window.Minted(start.Add(2 * time.Hour)); !got.Eq(uint256.NewInt(100)) {
		t.Fatalf("rejection must not change the counter, got %s", got.Dec())
	}
}

func TestWindowResetAnchorsToTriggeringMint(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	window := NewMintWindow(uint256.NewInt(100), start)

	if err := window.CheckAndConsume(uint256.NewInt(100), start); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	// The reset starts a fresh window at the consuming mint, not at the old
	// boundary.
	later := start.Add(30 * time.Hour)
	if err := window.CheckAndConsume(uint256.NewInt(80), later); err != nil {
		t.Fatalf("consume after elapse failed: %v", err)
	}
	if got := window.WindowStart(); !got.Equal(later) {
		t.Fatalf("expected window anchored at %v, got %v", later, got)
	}
	err := window.CheckAndConsume(uint256.NewInt(30), later.Add(23*time.Hour))
	if !errors.Is(err, domainerrors.ErrDailyLimitExceeded) {
		t.Fatalf("expected new window to bind for a full day, got %v", err)
	}
}

func TestWindowBoundaryIsExclusiveOfTheFullDay(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	window := NewMintWindow(uint256.NewInt(100), start)

	if err := window.CheckAndConsume(uint256.NewInt(100), start); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	boundary := start.Add(WindowDuration)
	if err := window.CheckAndConsume(uint256.NewInt(1), boundary.Add(-time.Nanosecond)); !errors.Is(err, domainerrors.ErrDailyLimitExceeded) {
		t.Fatalf("expected limit to bind just inside the window, got %v", err)
	}
	if err := window.CheckAndConsume(uint256.NewInt(1), boundary); err != nil {
		t.Fatalf("expected reset exactly at the boundary: %v", err)
	}
}

func TestWindowReadsReportElapsedWindowAsFresh(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	window := NewMintWindow(uint256.NewInt(100), start)

	if err := window.CheckAndConsume(uint256.NewInt(70), start); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if got := window.Remaining(start); !got.Eq(uint256.NewInt(30)) {
		t.Fatalf("expected remaining 30, got %s", got.Dec())
	}

	after := start.Add(WindowDuration)
	if got := window.Minted(after); !got.IsZero() {
		t.Fatalf("expected zero minted after elapse, got %s", got.Dec())
	}
	if got := window.Remaining(after); !got.Eq(uint256.NewInt(100)) {
		t.Fatalf("expected full limit after elapse, got %s", got.Dec())
	}
}

func TestWindowZeroLimitRejectsEverything(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	window := NewMintWindow(uint256.NewInt(0), start)

	err := window.CheckAndConsume(uint256.NewInt(1), start)
	if !errors.Is(err, domainerrors.ErrDailyLimitExceeded) {
		t.Fatalf("expected ErrDailyLimitExceeded, got %v", err)
	}
	if err := window.CheckAndConsume(uint256.NewInt(0), start); err != nil {
		t.Fatalf("zero consume against zero limit should pass: %v", err)
	}
}
