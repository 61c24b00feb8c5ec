package domain

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"strings"
)

const publicKeyPrefix = "ed25519:"

// PublicKey is the verifiable identity of a party. The zero value is invalid.
type PublicKey struct {
	key string // raw ed25519 bytes; string keeps PublicKey comparable
}

// NewPublicKey wraps raw ed25519 public key bytes.
func NewPublicKey(raw []byte) (PublicKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return PublicKey{}, InvalidValue(RulePartyKey, "ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return PublicKey{key: string(raw)}, nil
}

// ParsePublicKey parses the textual form "ed25519:<base64>".
func ParsePublicKey(s string) (PublicKey, error) {
	enc, ok := strings.CutPrefix(s, publicKeyPrefix)
	if !ok {
		return PublicKey{}, InvalidValue(RulePartyKey, "public key %q must start with %q", s, publicKeyPrefix)
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return PublicKey{}, InvalidValue(RulePartyKey, "public key is not valid base64: %v", err)
	}
	return NewPublicKey(raw)
}

// Bytes returns a copy of the raw key.
func (k PublicKey) Bytes() []byte { return []byte(k.key) }

// Ed25519 returns the key in the form crypto/ed25519 expects.
func (k PublicKey) Ed25519() ed25519.PublicKey { return ed25519.PublicKey(k.key) }

// IsZero reports whether k is the zero key.
func (k PublicKey) IsZero() bool { return k.key == "" }

// Equal compares raw key bytes.
func (k PublicKey) Equal(other PublicKey) bool { return k.key == other.key }

// Compare orders keys by raw bytes.
func (k PublicKey) Compare(other PublicKey) int {
	return bytes.Compare([]byte(k.key), []byte(other.key))
}

// String returns "ed25519:<base64>".
func (k PublicKey) String() string {
	if k.IsZero() {
		return ""
	}
	return publicKeyPrefix + base64.StdEncoding.EncodeToString([]byte(k.key))
}

// PartyReference names an economic actor plus an opaque tag for the actor's
// own bookkeeping (e.g. an internal issuance number).
type PartyReference struct {
	Party     PublicKey
	Reference string
}

// NewPartyReference validates the party key.
func NewPartyReference(party PublicKey, reference string) (PartyReference, error) {
	if party.IsZero() {
		return PartyReference{}, InvalidValue(RulePartyKey, "party reference requires a party key")
	}
	return PartyReference{Party: party, Reference: reference}, nil
}

// Equal compares the party key and the reference tag.
func (r PartyReference) Equal(other PartyReference) bool {
	return r.Party.Equal(other.Party) && r.Reference == other.Reference
}

// SameParty compares only the party key.
func (r PartyReference) SameParty(other PartyReference) bool {
	return r.Party.Equal(other.Party)
}

func (r PartyReference) String() string {
	return r.Party.String() + "/" + r.Reference
}
