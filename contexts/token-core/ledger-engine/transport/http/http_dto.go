package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Amounts travel as decimal strings so 256-bit values survive JSON intact;
// addresses and hashes are 0x-prefixed hex.

type TokenInfoDTO struct {
	Name                string `json:"name"`
	Symbol              string `json:"symbol"`
	Decimals            uint8  `json:"decimals"`
	TotalSupply         string `json:"total_supply"`
	MaxSupply           string `json:"max_supply"`
	Owner               string `json:"owner"`
	Paused              bool   `json:"paused"`
	EmergencyMode       bool   `json:"emergency_mode"`
	DailyMintLimit      string `json:"daily_mint_limit"`
	DailyMinted         string `json:"daily_minted"`
	RemainingDailyLimit string `json:"remaining_daily_limit"`
	DomainSeparator     string `json:"domain_separator"`
}

type TokenInfoResponse struct {
	Status string       `json:"status"`
	Data   TokenInfoDTO `json:"data"`
}

type AccountDTO struct {
	Address       string `json:"address"`
	Balance       string `json:"balance"`
	Nonce         uint64 `json:"nonce"`
	IsMinter      bool   `json:"is_minter"`
	IsBlacklisted bool   `json:"is_blacklisted"`
}

type AccountResponse struct {
	Status string     `json:"status"`
	Data   AccountDTO `json:"data"`
}

type AllowanceDTO struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type AllowanceResponse struct {
	Status string       `json:"status"`
	Data   AllowanceDTO `json:"data"`
}

type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type TransferResultDTO struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Amount      string `json:"amount"`
	FromBalance string `json:"from_balance"`
	ToBalance   string `json:"to_balance"`
}

type TransferResponse struct {
	Status string            `json:"status"`
	Data   TransferResultDTO `json:"data"`
}

type ApproveRequest struct {
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type TransferFromRequest struct {
	Owner  string `json:"owner"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type MintRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type MintResultDTO struct {
	To                  string `json:"to"`
	Amount              string `json:"amount"`
	TotalSupply         string `json:"total_supply"`
	DailyMinted         string `json:"daily_minted"`
	RemainingDailyLimit string `json:"remaining_daily_limit"`
}

type MintResponse struct {
	Status string        `json:"status"`
	Data   MintResultDTO `json:"data"`
}

type BurnRequest struct {
	Amount string `json:"amount"`
}

type BurnResultDTO struct {
	Owner       string `json:"owner"`
	Amount      string `json:"amount"`
	Balance     string `json:"balance"`
	TotalSupply string `json:"total_supply"`
}

type BurnResponse struct {
	Status string        `json:"status"`
	Data   BurnResultDTO `json:"data"`
}

type PermitRequest struct {
	Owner    string `json:"owner"`
	Spender  string `json:"spender"`
	Value    string `json:"value"`
	Deadline uint64 `json:"deadline"`
	V        uint8  `json:"v"`
	R        string `json:"r"`
	S        string `json:"s"`
}

type PermitResultDTO struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Value   string `json:"value"`
	Nonce   uint64 `json:"nonce"`
}

type PermitResponse struct {
	Status string          `json:"status"`
	Data   PermitResultDTO `json:"data"`
}

type EmergencyTransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type AddressRequest struct {
	Address string `json:"address"`
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner"`
}

type TokenStatusDTO struct {
	Owner         string `json:"owner"`
	Paused        bool   `json:"paused"`
	EmergencyMode bool   `json:"emergency_mode"`
}

type AdminActionResponse struct {
	Status string         `json:"status"`
	Data   TokenStatusDTO `json:"data"`
}

type TransferRecordDTO struct {
	TransferID string `json:"transfer_id"`
	Kind       string `json:"kind"`
	Caller     string `json:"caller"`
	From       string `json:"from"`
	To         string `json:"to"`
	Amount     string `json:"amount"`
	OccurredAt string `json:"occurred_at"`
}

type TransferHistoryResponse struct {
	Status string              `json:"status"`
	Data   []TransferRecordDTO `json:"data"`
}
