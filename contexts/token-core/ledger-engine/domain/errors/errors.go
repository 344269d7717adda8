package errors

import "errors"

var (
	ErrUnauthorized           = errors.New("caller is not authorized for this operation")
	ErrContractPaused         = errors.New("token operations are paused")
	ErrAddressBlacklisted     = errors.New("address is blacklisted")
	ErrZeroAddress            = errors.New("zero address is not a valid participant")
	ErrInsufficientBalance    = errors.New("balance is insufficient")
	ErrInsufficientAllowance  = errors.New("allowance is insufficient")
	ErrSupplyCapExceeded      = errors.New("mint would exceed the maximum supply")
	ErrDailyLimitExceeded     = errors.New("mint would exceed the daily limit")
	ErrPermitExpired          = errors.New("permit deadline has passed")
	ErrInvalidSignature       = errors.New("permit signature does not match owner")
	ErrAlreadyPaused          = errors.New("token is already paused")
	ErrAlreadyUnpaused        = errors.New("token is not paused")
	ErrAlreadyInEmergencyMode = errors.New("emergency mode is already active")
	ErrNotInEmergencyMode     = errors.New("emergency mode is not active")
	ErrInvalidAmount          = errors.New("amount is invalid")
	ErrInvalidAddress         = errors.New("address is invalid")
	ErrTransferNotFound       = errors.New("transfer record not found")
)
