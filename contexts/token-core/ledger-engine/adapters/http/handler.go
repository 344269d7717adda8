package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"aurum/contexts/token-core/ledger-engine/application"
	"aurum/contexts/token-core/ledger-engine/domain/entities"
	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	"aurum/contexts/token-core/ledger-engine/ports"
	httptransport "aurum/contexts/token-core/ledger-engine/transport/http"
)

type Handler struct {
	Service *application.Service
	Logger  *slog.Logger
}

func (h Handler) TokenInfoHandler(_ context.Context) (httptransport.TokenInfoResponse, error) {
	view := h.Service.TokenInfo()
	return httptransport.TokenInfoResponse{
		Status: "success",
		Data: httptransport.TokenInfoDTO{
			Name:                view.Name,
			Symbol:              view.Symbol,
			Decimals:            view.Decimals,
			TotalSupply:         view.TotalSupply.Dec(),
			MaxSupply:           view.MaxSupply.Dec(),
			Owner:               view.Owner.Hex(),
			Paused:              view.Paused,
			EmergencyMode:       view.EmergencyMode,
			DailyMintLimit:      view.DailyMintLimit.Dec(),
			DailyMinted:         view.DailyMinted.Dec(),
			RemainingDailyLimit: view.RemainingDailyLimit.Dec(),
			DomainSeparator:     view.DomainSeparator.Hex(),
		},
	}, nil
}

func (h Handler) AccountHandler(_ context.Context, rawAddress string) (httptransport.AccountResponse, error) {
	addr, err := parseAddress(rawAddress)
	if err != nil {
		return httptransport.AccountResponse{}, err
	}
	view := h.Service.Account(addr)
	return httptransport.AccountResponse{
		Status: "success",
		Data: httptransport.AccountDTO{
			Address:       view.Address.Hex(),
			Balance:       view.Balance.Dec(),
			Nonce:         view.Nonce,
			IsMinter:      view.IsMinter,
			IsBlacklisted: view.IsBlacklisted,
		},
	}, nil
}

func (h Handler) AllowanceHandler(_ context.Context, rawOwner string, rawSpender string) (httptransport.AllowanceResponse, error) {
	owner, err := parseAddress(rawOwner)
	if err != nil {
		return httptransport.AllowanceResponse{}, err
	}
	spender, err := parseAddress(rawSpender)
	if err != nil {
		return httptransport.AllowanceResponse{}, err
	}
	return httptransport.AllowanceResponse{
		Status: "success",
		Data: httptransport.AllowanceDTO{
			Owner:   owner.Hex(),
			Spender: spender.Hex(),
			Amount:  h.Service.Allowance(owner, spender).Dec(),
		},
	}, nil
}

func (h Handler) TransferHandler(ctx context.Context, caller common.Address, req httptransport.TransferRequest) (httptransport.TransferResponse, error) {
	to, err := parseAddress(req.To)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	if err := h.Service.Transfer(ctx, caller, ports.TransferInput{To: to, Amount: amount}); err != nil {
		return httptransport.TransferResponse{}, err
	}
	return httptransport.TransferResponse{
		Status: "success",
		Data: httptransport.TransferResultDTO{
			From:        caller.Hex(),
			To:          to.Hex(),
			Amount:      amount.Dec(),
			FromBalance: h.Service.BalanceOf(caller).Dec(),
			ToBalance:   h.Service.BalanceOf(to).Dec(),
		},
	}, nil
}

func (h Handler) ApproveHandler(ctx context.Context, caller common.Address, req httptransport.ApproveRequest) (httptransport.AllowanceResponse, error) {
	spender, err := parseAddress(req.Spender)
	if err != nil {
		return httptransport.AllowanceResponse{}, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.AllowanceResponse{}, err
	}
	if err := h.Service.Approve(ctx, caller, ports.ApproveInput{Spender: spender, Amount: amount}); err != nil {
		return httptransport.AllowanceResponse{}, err
	}
	return httptransport.AllowanceResponse{
		Status: "success",
		Data: httptransport.AllowanceDTO{
			Owner:   caller.Hex(),
			Spender: spender.Hex(),
			Amount:  h.Service.Allowance(caller, spender).Dec(),
		},
	}, nil
}

func (h Handler) TransferFromHandler(ctx context.Context, caller common.Address, req httptransport.TransferFromRequest) (httptransport.TransferResponse, error) {
	owner, err := parseAddress(req.Owner)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	to, err := parseAddress(req.To)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	if err := h.Service.TransferFrom(ctx, caller, ports.TransferFromInput{Owner: owner, To: to, Amount: amount}); err != nil {
		return httptransport.TransferResponse{}, err
	}
	return httptransport.TransferResponse{
		Status: "success",
		Data: httptransport.TransferResultDTO{
			From:        owner.Hex(),
			To:          to.Hex(),
			Amount:      amount.Dec(),
			FromBalance: h.Service.BalanceOf(owner).Dec(),
			ToBalance:   h.Service.BalanceOf(to).Dec(),
		},
	}, nil
}

func (h Handler) MintHandler(ctx context.Context, caller common.Address, req httptransport.MintRequest) (httptransport.MintResponse, error) {
	to, err := parseAddress(req.To)
	if err != nil {
		return httptransport.MintResponse{}, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.MintResponse{}, err
	}
	if err := h.Service.Mint(ctx, caller, ports.MintInput{To: to, Amount: amount}); err != nil {
		return httptransport.MintResponse{}, err
	}
	return httptransport.MintResponse{
		Status: "success",
		Data: httptransport.MintResultDTO{
			To:                  to.Hex(),
			Amount:              amount.Dec(),
			TotalSupply:         h.Service.TotalSupply().Dec(),
			DailyMinted:         h.Service.DailyMinted().Dec(),
			RemainingDailyLimit: h.Service.RemainingDailyLimit().Dec(),
		},
	}, nil
}

func (h Handler) BurnHandler(ctx context.Context, caller common.Address, req httptransport.BurnRequest) (httptransport.BurnResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.BurnResponse{}, err
	}
	if err := h.Service.Burn(ctx, caller, ports.BurnInput{Amount: amount}); err != nil {
		return httptransport.BurnResponse{}, err
	}
	return httptransport.BurnResponse{
		Status: "success",
		Data: httptransport.BurnResultDTO{
			Owner:       caller.Hex(),
			Amount:      amount.Dec(),
			Balance:     h.Service.BalanceOf(caller).Dec(),
			TotalSupply: h.Service.TotalSupply().Dec(),
		},
	}, nil
}

func (h Handler) PermitHandler(ctx context.Context, req httptransport.PermitRequest) (httptransport.PermitResponse, error) {
	owner, err := parseAddress(req.Owner)
	if err != nil {
		return httptransport.PermitResponse{}, err
	}
	spender, err := parseAddress(req.Spender)
	if err != nil {
		return httptransport.PermitResponse{}, err
	}
	value, err := parseAmount(req.Value)
	if err != nil {
		return httptransport.PermitResponse{}, err
	}
	r, err := parseHash(req.R)
	if err != nil {
		return httptransport.PermitResponse{}, err
	}
	s, err := parseHash(req.S)
	if err != nil {
		return httptransport.PermitResponse{}, err
	}
	input := ports.PermitInput{
		Owner:    owner,
		Spender:  spender,
		Value:    value,
		Deadline: req.Deadline,
		V:        req.V,
		R:        r,
		S:        s,
	}
	if err := h.Service.Permit(ctx, input); err != nil {
		return httptransport.PermitResponse{}, err
	}
	return httptransport.PermitResponse{
		Status: "success",
		Data: httptransport.PermitResultDTO{
			Owner:   owner.Hex(),
			Spender: spender.Hex(),
			Value:   value.Dec(),
			Nonce:   h.Service.Nonces(owner),
		},
	}, nil
}

func (h Handler) EmergencyTransferHandler(ctx context.Context, caller common.Address, req httptransport.EmergencyTransferRequest) (httptransport.TransferResponse, error) {
	from, err := parseAddress(req.From)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	to, err := parseAddress(req.To)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return httptransport.TransferResponse{}, err
	}
	if err := h.Service.EmergencyTransfer(ctx, caller, ports.EmergencyTransferInput{From: from, To: to, Amount: amount}); err != nil {
		return httptransport.TransferResponse{}, err
	}
	return httptransport.TransferResponse{
		Status: "success",
		Data: httptransport.TransferResultDTO{
			From:        from.Hex(),
			To:          to.Hex(),
			Amount:      amount.Dec(),
			FromBalance: h.Service.BalanceOf(from).Dec(),
			ToBalance:   h.Service.BalanceOf(to).Dec(),
		},
	}, nil
}

type adminOp func(ctx context.Context, caller common.Address) error

func (h Handler) adminAction(ctx context.Context, caller common.Address, op adminOp) (httptransport.AdminActionResponse, error) {
	if err := op(ctx, caller); err != nil {
		return httptransport.AdminActionResponse{}, err
	}
	return httptransport.AdminActionResponse{
		Status: "success",
		Data: httptransport.TokenStatusDTO{
			Owner:         h.Service.Owner().Hex(),
			Paused:        h.Service.Paused(),
			EmergencyMode: h.Service.EmergencyMode(),
		},
	}, nil
}

func (h Handler) PauseHandler(ctx context.Context, caller common.Address) (httptransport.AdminActionResponse, error) {
	return h.adminAction(ctx, caller, h.Service.Pause)
}

func (h Handler) UnpauseHandler(ctx context.Context, caller common.Address) (httptransport.AdminActionResponse, error) {
	return h.adminAction(ctx, caller, h.Service.Unpause)
}

func (h Handler) ActivateEmergencyHandler(ctx context.Context, caller common.Address) (httptransport.AdminActionResponse, error) {
	return h.adminAction(ctx, caller, h.Service.ActivateEmergencyMode)
}

func (h Handler) DeactivateEmergencyHandler(ctx context.Context, caller common.Address) (httptransport.AdminActionResponse, error) {
	return h.adminAction(ctx, caller, h.Service.DeactivateEmergencyMode)
}

type registryOp func(ctx context.Context, caller common.Address, addr common.Address) error

func (h Handler) registryAction(ctx context.Context, caller common.Address, rawAddress string, op registryOp) (httptransport.AdminActionResponse, error) {
	addr, err := parseAddress(rawAddress)
	if err != nil {
		return httptransport.AdminActionResponse{}, err
	}
	return h.adminAction(ctx, caller, func(ctx context.Context, caller common.Address) error {
		return op(ctx, caller, addr)
	})
}

func (h Handler) AddMinterHandler(ctx context.Context, caller common.Address, req httptransport.AddressRequest) (httptransport.AdminActionResponse, error) {
	return h.registryAction(ctx, caller, req.Address, h.Service.AddMinter)
}

func (h Handler) RemoveMinterHandler(ctx context.Context, caller common.Address, req httptransport.AddressRequest) (httptransport.AdminActionResponse, error) {
	return h.registryAction(ctx, caller, req.Address, h.Service.RemoveMinter)
}

func (h Handler) BlacklistHandler(ctx context.Context, caller common.Address, req httptransport.AddressRequest) (httptransport.AdminActionResponse, error) {
	return h.registryAction(ctx, caller, req.Address, h.Service.Blacklist)
}

func (h Handler) UnblacklistHandler(ctx context.Context, caller common.Address, req httptransport.AddressRequest) (httptransport.AdminActionResponse, error) {
	return h.registryAction(ctx, caller, req.Address, h.Service.Unblacklist)
}

func (h Handler) TransferOwnershipHandler(ctx context.Context, caller common.Address, req httptransport.TransferOwnershipRequest) (httptransport.AdminActionResponse, error) {
	return h.registryAction(ctx, caller, req.NewOwner, h.Service.TransferOwnership)
}

func (h Handler) TransferHistoryHandler(ctx context.Context, rawAddress string, limit int, offset int) (httptransport.TransferHistoryResponse, error) {
	addr, err := parseAddress(rawAddress)
	if err != nil {
		return httptransport.TransferHistoryResponse{}, err
	}
	items, err := h.Service.ListTransfers(ctx, addr, limit, offset)
	if err != nil {
		return httptransport.TransferHistoryResponse{}, err
	}
	resp := httptransport.TransferHistoryResponse{
		Status: "success",
		Data:   make([]httptransport.TransferRecordDTO, 0, len(items)),
	}
	for _, item := range items {
		resp.Data = append(resp.Data, toTransferDTO(item))
	}
	return resp, nil
}

func toTransferDTO(record entities.TransferRecord) httptransport.TransferRecordDTO {
	amount := "0"
	if record.Amount != nil {
		amount = record.Amount.Dec()
	}
	return httptransport.TransferRecordDTO{
		TransferID: record.TransferID,
		Kind:       string(record.Kind),
		Caller:     record.Caller.Hex(),
		From:       record.From.Hex(),
		To:         record.To.Hex(),
		Amount:     amount,
		OccurredAt: record.OccurredAt.UTC().Format(time.RFC3339),
	}
}

func parseAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, domainerrors.ErrInvalidAddress
	}
	return common.HexToAddress(raw), nil
}

func parseAmount(raw string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, domainerrors.ErrInvalidAmount
	}
	return amount, nil
}

func parseHash(raw string) (common.Hash, error) {
	if len(raw) != 66 || raw[:2] != "0x" {
		return common.Hash{}, domainerrors.ErrInvalidSignature
	}
	return common.HexToHash(raw), nil
}
