package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	ledgerengine "aurum/contexts/token-core/ledger-engine"
	tokenhttp "aurum/contexts/token-core/ledger-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "aurum/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	token  ledgerengine.Module
}

func New(token ledgerengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		token:  token,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /v1/token", s.handleTokenInfo)
	s.mux.HandleFunc("GET /v1/token/accounts/{address}", s.handleAccount)
	s.mux.HandleFunc("GET /v1/token/accounts/{address}/allowances/{spender}", s.handleAllowance)
	s.mux.HandleFunc("GET /v1/token/transfers", s.handleTransferHistory)

	s.mux.HandleFunc("POST /v1/token/transfer", s.handleTransfer)
	s.mux.HandleFunc("POST /v1/token/approve", s.handleApprove)
	s.mux.HandleFunc("POST /v1/token/transfer-from", s.handleTransferFrom)
	s.mux.HandleFunc("POST /v1/token/mint", s.handleMint)
	s.mux.HandleFunc("POST /v1/token/burn", s.handleBurn)
	s.mux.HandleFunc("POST /v1/token/permit", s.handlePermit)

	s.registerAdminRoutes()
}

func (s *Server) handleTokenInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token.Handler.TokenInfoHandler(r.Context())
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token.Handler.AccountHandler(r.Context(), r.PathValue("address"))
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAllowance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token.Handler.AllowanceHandler(
		r.Context(),
		r.PathValue("address"),
		r.PathValue("spender"),
	)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	address := query.Get("address")
	if address == "" {
		writeTokenError(w, http.StatusBadRequest, "invalid_request", "address query parameter is required")
		return
	}

	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeTokenError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}
	offset := 0
	if offsetRaw := query.Get("offset"); offsetRaw != "" {
		parsed, err := strconv.Atoi(offsetRaw)
		if err != nil {
			writeTokenError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return
		}
		offset = parsed
	}

	resp, err := s.token.Handler.TransferHistoryHandler(r.Context(), address, limit, offset)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.TransferHandler(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.ApproveHandler(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferFrom(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.TransferFromRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.TransferFromHandler(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.MintHandler(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tokenhttp.BurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.BurnHandler(r.Context(), caller, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePermit carries its own authorization in the signature: the caller
// header is not required because anyone may relay a signed permit.
func (s *Server) handlePermit(w http.ResponseWriter, r *http.Request) {
	var req tokenhttp.PermitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.PermitHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
