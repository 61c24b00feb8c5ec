package service

import (
	"crypto/ed25519"
	"io"
	"testing"
	"time"

	"commercial-paper-verifier/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

var testTxTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testKeyPair derives a deterministic ed25519 key pair from seed.
func testKeyPair(t *testing.T, seed byte) (domain.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	s := make([]byte, ed25519.SeedSize)
	s[0] = seed
	priv := ed25519.NewKeyFromSeed(s)
	pub, err := domain.NewPublicKey(priv.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	return pub, priv
}

func testPaper(issuer, owner domain.PublicKey) domain.CommercialPaperState {
	return domain.CommercialPaperState{
		Issuer:       domain.PartyReference{Party: issuer, Reference: "CP-001"},
		Owner:        owner,
		FaceValue:    domain.MustAmount(1000, "USD"),
		Issuance:     domain.PartyReference{Party: issuer, Reference: "ISSUE-001"},
		MaturityDate: testTxTime.Add(30 * 24 * time.Hour),
	}
}
