package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	tokenhttp "aurum/contexts/token-core/ledger-engine/transport/http"
)

func decodeBody[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, string(raw))
	}
	return out
}

func TestTokenInfoReportsConfiguredToken(t *testing.T) {
	server := newTestServer(t)
	rr := doJSON(t, server, http.MethodGet, "/v1/token", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	resp := decodeBody[tokenhttp.TokenInfoResponse](t, rr.Body.Bytes())
	if resp.Status != "success" {
		t.Fatalf("expected success status, got %q", resp.Status)
	}
	if resp.Data.Name != "Aurum" || resp.Data.Symbol != "AUR" || resp.Data.Decimals != 18 {
		t.Fatalf("unexpected token identity: %+v", resp.Data)
	}
	if resp.Data.TotalSupply != "1000000" || resp.Data.MaxSupply != "2000000" {
		t.Fatalf("unexpected supply figures: %+v", resp.Data)
	}
	if resp.Data.Paused || resp.Data.EmergencyMode {
		t.Fatalf("expected fresh instance unpaused: %+v", resp.Data)
	}
	if resp.Data.RemainingDailyLimit != "100000" {
		t.Fatalf("expected full daily quota, got %s", resp.Data.RemainingDailyLimit)
	}
}

func TestTransferRoundtripUpdatesAccounts(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/v1/token/transfer", testOwner, map[string]string{
		"to": testAlice, "amount": "250",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("transfer: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	transfer := decodeBody[tokenhttp.TransferResponse](t, rr.Body.Bytes())
	if transfer.Data.Amount != "250" || transfer.Data.ToBalance != "250" {
		t.Fatalf("unexpected transfer result: %+v", transfer.Data)
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/token/accounts/"+testAlice, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("account: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	account := decodeBody[tokenhttp.AccountResponse](t, rr.Body.Bytes())
	if account.Data.Balance != "250" {
		t.Fatalf("expected balance 250, got %s", account.Data.Balance)
	}
}

func TestApproveThenReadAllowance(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/v1/token/approve", testOwner, map[string]string{
		"spender": testAlice, "amount": "500",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/token/accounts/"+testOwner+"/allowances/"+testAlice, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("allowance: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	allowance := decodeBody[tokenhttp.AllowanceResponse](t, rr.Body.Bytes())
	if allowance.Data.Amount != "500" {
		t.Fatalf("expected allowance 500, got %s", allowance.Data.Amount)
	}
}

func TestTransferFromSpendsApprovedFunds(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/v1/token/approve", testOwner, map[string]string{
		"spender": testAlice, "amount": "500",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/token/transfer-from", testAlice, map[string]string{
		"owner": testOwner, "to": testBob, "amount": "300",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("transfer-from: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/token/accounts/"+testOwner+"/allowances/"+testAlice, "", nil)
	allowance := decodeBody[tokenhttp.AllowanceResponse](t, rr.Body.Bytes())
	if allowance.Data.Amount != "200" {
		t.Fatalf("expected remaining allowance 200, got %s", allowance.Data.Amount)
	}
}

func TestMintAndBurnAdjustSupply(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/v1/token/mint", testOwner, map[string]string{
		"to": testAlice, "amount": "1000",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("mint: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	mint := decodeBody[tokenhttp.MintResponse](t, rr.Body.Bytes())
	if mint.Data.TotalSupply != "1001000" {
		t.Fatalf("expected supply 1001000, got %s", mint.Data.TotalSupply)
	}
	if mint.Data.DailyMinted != "1000" || mint.Data.RemainingDailyLimit != "99000" {
		t.Fatalf("unexpected window figures: %+v", mint.Data)
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/token/burn", testAlice, map[string]string{
		"amount": "400",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("burn: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	burn := decodeBody[tokenhttp.BurnResponse](t, rr.Body.Bytes())
	if burn.Data.TotalSupply != "1000600" || burn.Data.Balance != "600" {
		t.Fatalf("unexpected burn result: %+v", burn.Data)
	}
}

func TestTransferHistoryListsMovements(t *testing.T) {
	server := newTestServer(t)

	for _, amount := range []string{"10", "20"} {
		rr := doJSON(t, server, http.MethodPost, "/v1/token/transfer", testOwner, map[string]string{
			"to": testAlice, "amount": amount,
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("transfer %s: expected 200, got %d body=%s", amount, rr.Code, rr.Body.String())
		}
	}

	rr := doJSON(t, server, http.MethodGet, "/v1/token/transfers?address="+testAlice, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	history := decodeBody[tokenhttp.TransferHistoryResponse](t, rr.Body.Bytes())
	if len(history.Data) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history.Data))
	}
	for _, item := range history.Data {
		if item.Kind != "transfer" {
			t.Fatalf("unexpected kind %s", item.Kind)
		}
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/token/transfers", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("history without address: expected 400, got %d", rr.Code)
	}
}

func TestEmergencyFlowOverHTTP(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/v1/token/transfer", testOwner, map[string]string{
		"to": testAlice, "amount": "100",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("seed transfer: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, server, http.MethodPost, "/v1/token/admin/emergency/activate", testOwner, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/token/admin/emergency/transfer", testOwner, map[string]string{
		"from": testAlice, "to": testBob, "amount": "100",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("emergency transfer: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/token/accounts/"+testBob, "", nil)
	account := decodeBody[tokenhttp.AccountResponse](t, rr.Body.Bytes())
	if account.Data.Balance != "100" {
		t.Fatalf("expected recovered balance 100, got %s", account.Data.Balance)
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/token/admin/emergency/deactivate", testOwner, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("deactivate: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestOwnershipTransferOverHTTP(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, http.MethodPost, "/v1/token/admin/ownership/transfer", testOwner, map[string]string{
		"new_owner": testAlice,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("ownership transfer: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/token/admin/pause", testOwner, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("old owner pause: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, server, http.MethodPost, "/v1/token/admin/pause", testAlice, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("new owner pause: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}
