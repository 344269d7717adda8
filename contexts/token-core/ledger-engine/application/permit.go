package application

import (
	"context"

	domainerrors "aurum/contexts/token-core/ledger-engine/domain/errors"
	"aurum/contexts/token-core/ledger-engine/ports"
	"aurum/internal/shared/eip712"
)

// Permit applies a signature-authorized approval. The signed message binds
// {owner, spender, value, nonce(owner), deadline} under this instance's
// domain separator; on success the owner's nonce advances by exactly one, so
// the same signature bytes can never authorize a second approval.
func (s *Service) Permit(ctx context.Context, input ports.PermitInput) error {
	if err := requireAmount(input.Value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireNotPaused(); err != nil {
		return err
	}
	if err := requireNonZeroAddress(input.Owner); err != nil {
		return err
	}
	if err := requireNonZeroAddress(input.Spender); err != nil {
		return err
	}
	if err := s.requireNotBlacklisted(input.Owner, input.Spender); err != nil {
		return err
	}

	now := s.now()
	if uint64(now.Unix()) > input.Deadline {
		return domainerrors.ErrPermitExpired
	}

	digest := eip712.PermitDigest(
		s.separator,
		input.Owner,
		input.Spender,
		input.Value,
		s.book.NonceOf(input.Owner),
		input.Deadline,
	)
	signer, err := eip712.RecoverSigner(digest, input.V, input.R, input.S)
	if err != nil || signer != input.Owner {
		return domainerrors.ErrInvalidSignature
	}

	// Same observable state change as a direct approve, plus the nonce bump.
	s.book.SetAllowance(input.Owner, input.Spender, input.Value)
	s.book.BumpNonce(input.Owner)

	s.appendEvent(ctx, "token.permit_used", input.Owner.Hex(), map[string]any{
		"owner":    input.Owner.Hex(),
		"spender":  input.Spender.Hex(),
		"value":    input.Value.Dec(),
		"nonce":    s.book.NonceOf(input.Owner),
		"deadline": input.Deadline,
	}, now)
	resolveLogger(s.Logger).Info("permit applied",
		"event", "token_permit_used",
		"module", "token-core/ledger-engine",
		"layer", "application",
		"owner", input.Owner.Hex(),
		"spender", input.Spender.Hex(),
		"value", input.Value.Dec(),
	)
	return nil
}
