package service

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"slices"
	"time"

	"commercial-paper-verifier/internal/core/domain"

	"golang.org/x/crypto/sha3"
)

// Domain separation tags. Bump the version when the encoding changes.
const (
	txIDTag       = "cp-verifier/tx/v1"
	verdictKeyTag = "cp-verifier/verdict/v1"
)

// SHA3HashService implements ports.HashService using SHA3-256 over a
// length-prefixed canonical encoding.
type SHA3HashService struct{}

// NewSHA3HashService creates a new SHA3-256 hash service.
func NewSHA3HashService() *SHA3HashService {
	return &SHA3HashService{}
}

// TransactionID returns the 32-byte id of tx. Signers are not part of the id:
// they sign it.
func (s *SHA3HashService) TransactionID(tx domain.TransactionContext) []byte {
	h := sha3.New256()
	writeBytes(h, []byte(txIDTag))
	writeBytes(h, []byte(tx.Command))
	writeTime(h, tx.Time)
	writeStates(h, tx.Inputs)
	writeStates(h, tx.Outputs)
	return h.Sum(nil)
}

// VerdictKey returns the hex cache key for txID judged with signers.
// Duplicate signers and signer order do not change the key.
func (s *SHA3HashService) VerdictKey(txID []byte, signers []domain.PublicKey) string {
	sorted := slices.Clone(signers)
	slices.SortFunc(sorted, domain.PublicKey.Compare)
	sorted = slices.CompactFunc(sorted, domain.PublicKey.Equal)

	h := sha3.New256()
	writeBytes(h, []byte(verdictKeyTag))
	writeBytes(h, txID)
	writeUint(h, uint64(len(sorted)))
	for _, k := range sorted {
		writeBytes(h, k.Bytes())
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeStates(h hash.Hash, states []domain.CommercialPaperState) {
	writeUint(h, uint64(len(states)))
	for _, st := range states {
		writeParty(h, st.Issuer)
		writeBytes(h, st.Owner.Bytes())
		writeUint(h, uint64(st.FaceValue.Quantity()))
		writeBytes(h, []byte(st.FaceValue.Currency()))
		writeParty(h, st.Issuance)
		writeTime(h, st.MaturityDate)
	}
}

func writeParty(h hash.Hash, p domain.PartyReference) {
	writeBytes(h, p.Party.Bytes())
	writeBytes(h, []byte(p.Reference))
}

// writeTime encodes an instant as UTC unix seconds plus nanoseconds so the
// encoding is independent of location. The zero time gets its own marker.
func writeTime(h hash.Hash, t time.Time) {
	if t.IsZero() {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte{1})
	writeUint(h, uint64(t.Unix()))
	writeUint(h, uint64(t.Nanosecond()))
}

func writeBytes(h hash.Hash, b []byte) {
	writeUint(h, uint64(len(b)))
	h.Write(b)
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}
