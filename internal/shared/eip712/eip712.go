package eip712

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// ErrUnrecoverable reports signature components from which no public key can
// be recovered.
var ErrUnrecoverable = errors.New("signature components are unrecoverable")

// Typed-data hashing and signature recovery for the permit scheme.
// The encoding follows the standard deterministic layout: every value is a
// 32-byte word, dynamic strings are hashed first, and the final digest is
// keccak256(0x19 0x01 ‖ domainSeparator ‖ structHash).

var (
	domainTypehash = crypto.Keccak256Hash(
		[]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"),
	)
	// PermitTypehash binds the permit struct layout:
	// Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline).
	PermitTypehash = crypto.Keccak256Hash(
		[]byte("Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline)"),
	)
)

// Domain identifies one verifying contract instance on one chain. Signatures
// under one domain never verify under another.
type Domain struct {
	Name              string
	Version           string
	ChainID           uint64
	VerifyingContract common.Address
}

// Separator derives the domain separator. It is deterministic in the domain
// fields and safe to cache for the life of the instance.
func (d Domain) Separator() common.Hash {
	return crypto.Keccak256Hash(
		domainTypehash.Bytes(),
		crypto.Keccak256([]byte(d.Name)),
		crypto.Keccak256([]byte(d.Version)),
		uintWord(uint256.NewInt(d.ChainID)),
		addressWord(d.VerifyingContract),
	)
}

// PermitDigest computes the signable digest for one permit message.
func PermitDigest(
	separator common.Hash,
	owner common.Address,
	spender common.Address,
	value *uint256.Int,
	nonce uint64,
	deadline uint64,
) common.Hash {
	structHash := crypto.Keccak256Hash(
		PermitTypehash.Bytes(),
		addressWord(owner),
		addressWord(spender),
		uintWord(value),
		uintWord(uint256.NewInt(nonce)),
		uintWord(uint256.NewInt(deadline)),
	)
	return crypto.Keccak256Hash(
		[]byte{0x19, 0x01},
		separator.Bytes(),
		structHash.Bytes(),
	)
}

// RecoverSigner recovers the address that signed digest from the raw
// signature components. Both the 27/28 and the 0/1 recovery id conventions
// are accepted.
func RecoverSigner(digest common.Hash, v uint8, r common.Hash, s common.Hash) (common.Address, error) {
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return common.Address{}, ErrUnrecoverable
	}

	sig := make([]byte, 65)
	copy(sig[:32], r.Bytes())
	copy(sig[32:64], s.Bytes())
	sig[64] = v

	pub, err := crypto.Ecrecover(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, ErrUnrecoverable
	}
	return common.BytesToAddress(crypto.Keccak256(pub[1:])[12:]), nil
}

func uintWord(value *uint256.Int) []byte {
	word := value.Bytes32()
	return word[:]
}

func addressWord(addr common.Address) []byte {
	word := make([]byte, 32)
	copy(word[12:], addr.Bytes())
	return word
}
