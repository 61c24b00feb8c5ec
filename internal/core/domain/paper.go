package domain

import "time"

// CommercialPaperState is one version of a commercial paper on the ledger.
// Values are never mutated in place; the With* methods return a modified copy.
type CommercialPaperState struct {
	Issuer       PartyReference
	Owner        PublicKey
	FaceValue    Amount
	Issuance     PartyReference
	MaturityDate time.Time
}

// WithOwner returns a copy of s owned by newOwner.
func (s CommercialPaperState) WithOwner(newOwner PublicKey) CommercialPaperState {
	s.Owner = newOwner
	return s
}

// WithIssuance returns a copy of s with a different issuance reference.
func (s CommercialPaperState) WithIssuance(newIssuance PartyReference) CommercialPaperState {
	s.Issuance = newIssuance
	return s
}

// WithFaceValue returns a copy of s with a different face value.
func (s CommercialPaperState) WithFaceValue(newFaceValue Amount) CommercialPaperState {
	s.FaceValue = newFaceValue
	return s
}

// WithMaturityDate returns a copy of s maturing at newMaturityDate.
func (s CommercialPaperState) WithMaturityDate(newMaturityDate time.Time) CommercialPaperState {
	s.MaturityDate = newMaturityDate
	return s
}

// Participants returns the keys that have an interest in this state:
// the owner and, when different, the issuing party.
func (s CommercialPaperState) Participants() []PublicKey {
	if s.Issuer.Party.Equal(s.Owner) {
		return []PublicKey{s.Owner}
	}
	return []PublicKey{s.Owner, s.Issuer.Party}
}

// Equal compares every field. Maturity dates compare as instants.
func (s CommercialPaperState) Equal(other CommercialPaperState) bool {
	return s.Owner.Equal(other.Owner) && s.EqualExceptOwner(other)
}

// EqualExceptOwner compares every field but the owner.
func (s CommercialPaperState) EqualExceptOwner(other CommercialPaperState) bool {
	return s.Issuer.Equal(other.Issuer) &&
		s.FaceValue.Equal(other.FaceValue) &&
		s.Issuance.Equal(other.Issuance) &&
		s.MaturityDate.Equal(other.MaturityDate)
}
