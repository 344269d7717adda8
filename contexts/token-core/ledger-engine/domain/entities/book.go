package entities

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
)

// Unlimited is the allowance sentinel that is never decremented by
// transferFrom, matching the usual unlimited-approval convention.
func Unlimited() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// Book holds balances, allowances, permit nonces and the supply counters.
// Accounts are created lazily on first reference and never explicitly
// destroyed; a zero balance with no allowances is equivalent to absence.
type Book struct {
	balances    map[common.Address]*uint256.Int
	allowances  map[common.Address]map[common.Address]*uint256.Int
	nonces      map[common.Address]uint64
	totalSupply *uint256.Int
	maxSupply   *uint256.Int
}

func NewBook(maxSupply *uint256.Int) *Book {
	return &Book{
		balances:    make(map[common.Address]*uint256.Int),
		allowances:  make(map[common.Address]map[common.Address]*uint256.Int),
		nonces:      make(map[common.Address]uint64),
		totalSupply: uint256.NewInt(0),
		maxSupply:   new(uint256.Int).Set(maxSupply),
	}
}

func (b *Book) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(b.totalSupply)
}

func (b *Book) MaxSupply() *uint256.Int {
	return new(uint256.Int).Set(b.maxSupply)
}

func (b *Book) BalanceOf(addr common.Address) *uint256.Int {
	if balance, ok := b.balances[addr]; ok {
		return new(uint256.Int).Set(balance)
	}
	return uint256.NewInt(0)
}

func (b *Book) Allowance(owner common.Address, spender common.Address) *uint256.Int {
	if granted, ok := b.allowances[owner][spender]; ok {
		return new(uint256.Int).Set(granted)
	}
	return uint256.NewInt(0)
}

func (b *Book) NonceOf(owner common.Address) uint64 {
	return b.nonces[owner]
}

func (b *Book) BumpNonce(owner common.Address) {
	b.nonces[owner]++
}

// Move debits from and credits to atomically: the debit is validated before
// either side changes, so a failed move leaves the book untouched.
func (b *Book) Move(from common.Address, to common.Address, amount *uint256.Int) error {
	balance := b.BalanceOf(from)
	if balance.Lt(amount) {
		return domainerrors.ErrInsufficientBalance
	}
	b.balances[from] = balance.Sub(balance, amount)
	b.credit(to, amount)
	return nil
}

// SetAllowance overwrites the spender allowance (not additive).
func (b *Book) SetAllowance(owner common.Address, spender common.Address, amount *uint256.Int) {
	if b.allowances[owner] == nil {
		b.allowances[owner] = make(map[common.Address]*uint256.Int)
	}
	b.allowances[owner][spender] = new(uint256.Int).Set(amount)
}

// ConsumeAllowance decrements the spender allowance by amount. The unlimited
// sentinel is left untouched. The allowance never goes negative.
func (b *Book) ConsumeAllowance(owner common.Address, spender common.Address, amount *uint256.Int) error {
	granted := b.Allowance(owner, spender)
	if granted.Lt(amount) {
		return domainerrors.ErrInsufficientAllowance
	}
	if granted.Eq(Unlimited()) {
		return nil
	}
	b.allowances[owner][spender] = granted.Sub(granted, amount)
	return nil
}

// Mint creates amount for to, enforcing the supply ceiling.
func (b *Book) Mint(to common.Address, amount *uint256.Int) error {
	next := new(uint256.Int)
	if _, overflow := next.AddOverflow(b.totalSupply, amount); overflow {
		return domainerrors.ErrSupplyCapExceeded
	}
	if next.Gt(b.maxSupply) {
		return domainerrors.ErrSupplyCapExceeded
	}
	b.totalSupply = next
	b.credit(to, amount)
	return nil
}

// Burn destroys amount from owner's balance and the total supply.
func (b *Book) Burn(owner common.Address, amount *uint256.Int) error {
	balance := b.BalanceOf(owner)
	if balance.Lt(amount) {
		return domainerrors.ErrInsufficientBalance
	}
	b.balances[owner] = balance.Sub(balance, amount)
	b.totalSupply = new(uint256.Int).Sub(b.totalSupply, amount)
	return nil
}

// SumOfBalances recomputes the conservation side of the supply invariant.
// It exists for diagnostics and tests, not for the hot path.
func (b *Book) SumOfBalances() *uint256.Int {
	sum := uint256.NewInt(0)
	for _, balance := range b.balances {
		sum.Add(sum, balance)
	}
	return sum
}

func (b *Book) credit(to common.Address, amount *uint256.Int) {
	balance := b.BalanceOf(to)
	b.balances[to] = balance.Add(balance, amount)
}
