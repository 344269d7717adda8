package entities

import (
	"time"

	"github.com/holiman/uint256"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
)

// WindowDuration is the span of one mint quota window.
const WindowDuration = 24 * time.Hour

// MintWindow enforces the rolling daily mint quota. The window is anchored to
// the mint that first observed the previous window as elapsed (reset sets
// windowStart = now), not to a calendar day.
type MintWindow struct {
	windowStart time.Time
	minted      *uint256.Int
	dailyLimit  *uint256.Int
}

func NewMintWindow(dailyLimit *uint256.Int, now time.Time) *MintWindow {
	return &MintWindow{
		windowStart: now.UTC(),
		minted:      uint256.NewInt(0),
		dailyLimit:  new(uint256.Int).Set(dailyLimit),
	}
}

func (w *MintWindow) DailyLimit() *uint256.Int {
	return new(uint256.Int).Set(w.dailyLimit)
}

// Minted reports the amount consumed in the window as of now: after the
// window elapses it reports zero even before the next mint resets it.
func (w *MintWindow) Minted(now time.Time) *uint256.Int {
	if w.elapsed(now) {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(w.minted)
}

// Remaining reports the quota still available in the window as of now.
func (w *MintWindow) Remaining(now time.Time) *uint256.Int {
	minted := w.Minted(now)
	if minted.Gt(w.dailyLimit) {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Sub(w.dailyLimit, minted)
}

func (w *MintWindow) WindowStart() time.Time {
	return w.windowStart
}

// CheckAndConsume admits amount against the window as of now, resetting the
// window first if it has elapsed. On rejection nothing is consumed.
func (w *MintWindow) CheckAndConsume(amount *uint256.Int, now time.Time) error {
	if w.elapsed(now) {
		w.windowStart = now.UTC()
		w.minted = uint256.NewInt(0)
	}
	next := new(uint256.Int)
	if _, overflow := next.AddOverflow(w.minted, amount); overflow {
		return domainerrors.ErrDailyLimitExceeded
	}
	if next.Gt(w.dailyLimit) {
		return domainerrors.ErrDailyLimitExceeded
	}
	w.minted = next
	return nil
}

func (w *MintWindow) elapsed(now time.Time) bool {
	return !now.UTC().Before(w.windowStart.Add(WindowDuration))
}
