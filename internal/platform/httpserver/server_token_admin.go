package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	tokenhttp "aurum/contexts/token-core/ledger-engine/transport/http"
)

func (s *Server) registerAdminRoutes() {
	s.mux.HandleFunc("POST /v1/token/admin/pause", s.handlePause)
	s.mux.HandleFunc("POST /v1/token/admin/unpause", s.handleUnpause)
	s.mux.HandleFunc("POST /v1/token/admin/emergency/activate", s.handleEmergencyActivate)
	s.mux.HandleFunc("POST /v1/token/admin/emergency/deactivate", s.handleEmergencyDeactivate)
	s.mux.HandleFunc("POST /v1/token/admin/emergency/transfer", s.handleEmergencyTransfer)
	s.mux.HandleFunc("POST /v1/token/admin/minters/grant", s.handleGrantMinter)
	s.mux.HandleFunc("POST /v1/token/admin/minters/revoke", s.handleRevokeMinter)
	s.mux.HandleFunc("POST /v1/token/admin/blacklist", s.handleBlacklist)
	s.mux.HandleFunc("POST /v1/token/admin/unblacklist", s.handleUnblacklist)
	s.mux.HandleFunc("POST /v1/token/admin/ownership/transfer", s.handleTransferOwnership)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.token.Handler.PauseHandler(r.Context(), caller)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.token.Handler.UnpauseHandler(r.Context(), caller)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEmergencyActivate(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.token.Handler.ActivateEmergencyHandler(r.Context(), caller)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEmergencyDeactivate(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.token.Handler.DeactivateEmergencyHandler(r.Context(), caller)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEmergencyTransfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.EmergencyTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.EmergencyTransferHandler(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrantMinter(w http.ResponseWriter, r *http.Request) {
	s.handleRegistryAction(w, r, s.token.Handler.AddMinterHandler)
}

func (s *Server) handleRevokeMinter(w http.ResponseWriter, r *http.Request) {
	s.handleRegistryAction(w, r, s.token.Handler.RemoveMinterHandler)
}

func (s *Server) handleBlacklist(w http.ResponseWriter, r *http.Request) {
	s.handleRegistryAction(w, r, s.token.Handler.BlacklistHandler)
}

func (s *Server) handleUnblacklist(w http.ResponseWriter, r *http.Request) {
	s.handleRegistryAction(w, r, s.token.Handler.UnblacklistHandler)
}

func (s *Server) handleRegistryAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, caller common.Address, req tokenhttp.AddressRequest) (tokenhttp.AdminActionResponse, error),
) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := action(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.TransferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.TransferOwnershipHandler(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireCaller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := strings.TrimSpace(r.Header.Get("X-Caller-Address"))
	if raw == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_caller", "X-Caller-Address header is required")
		return common.Address{}, false
	}
	if !common.IsHexAddress(raw) {
		writeTokenError(w, http.StatusBadRequest, "invalid_caller", "X-Caller-Address must be a hex address")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

func writeTokenError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tokenhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeTokenDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrUnauthorized):
		writeTokenError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domainerrors.ErrAddressBlacklisted):
		writeTokenError(w, http.StatusForbidden, "address_blacklisted", err.Error())
	case errors.Is(err, domainerrors.ErrContractPaused):
		writeTokenError(w, http.StatusConflict, "contract_paused", err.Error())
	case errors.Is(err, domainerrors.ErrInsufficientBalance):
		writeTokenError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, domainerrors.ErrInsufficientAllowance):
		writeTokenError(w, http.StatusConflict, "insufficient_allowance", err.Error())
	case errors.Is(err, domainerrors.ErrSupplyCapExceeded):
		writeTokenError(w, http.StatusConflict, "supply_cap_exceeded", err.Error())
	case errors.Is(err, domainerrors.ErrDailyLimitExceeded):
		writeTokenError(w, http.StatusTooManyRequests, "daily_limit_exceeded", err.Error())
	case errors.Is(err, domainerrors.ErrPermitExpired):
		writeTokenError(w, http.StatusBadRequest, "permit_expired", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidSignature):
		writeTokenError(w, http.StatusUnauthorized, "invalid_signature", err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyPaused),
		errors.Is(err, domainerrors.ErrAlreadyUnpaused),
		errors.Is(err, domainerrors.ErrAlreadyInEmergencyMode),
		errors.Is(err, domainerrors.ErrNotInEmergencyMode):
		writeTokenError(w, http.StatusConflict, "invalid_state_transition", err.Error())
	case errors.Is(err, domainerrors.ErrZeroAddress),
		errors.Is(err, domainerrors.ErrInvalidAddress),
		errors.Is(err, domainerrors.ErrInvalidAmount):
		writeTokenError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domainerrors.ErrTransferNotFound):
		writeTokenError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeTokenError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
