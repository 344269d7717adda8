package entities

import "github.com/ethereum/go-ethereum/common"

// AccessList tracks the minter set and the blacklist. Grant and revoke
// operations are idempotent: repeating one is a no-op success, which keeps
// multi-admin coordination free of spurious failures.
type AccessList struct {
	minters   map[common.Address]bool
	blacklist map[common.Address]bool
}

func NewAccessList() *AccessList {
	return &AccessList{
		minters:   make(map[common.Address]bool),
		blacklist: make(map[common.Address]bool),
	}
}

func (a *AccessList) GrantMinter(addr common.Address) {
	a.minters[addr] = true
}

func (a *AccessList) RevokeMinter(addr common.Address) {
	delete(a.minters, addr)
}

func (a *AccessList) IsMinter(addr common.Address) bool {
	return a.minters[addr]
}

func (a *AccessList) Blacklist(addr common.Address) {
	a.blacklist[addr] = true
}

func (a *AccessList) Unblacklist(addr common.Address) {
	delete(a.blacklist, addr)
}

func (a *AccessList) IsBlacklisted(addr common.Address) bool {
	return a.blacklist[addr]
}
