package dto

import (
	"encoding/base64"
	"time"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/internal/service"
	"commercial-paper-verifier/pkg/apperror"
)

// VerifyRequest is the request body for transaction verification.
// Command and time are deliberately not required here: an unknown command or
// a missing time is a verdict (MalformedTransaction), not a bad request.
type VerifyRequest struct {
	Inputs     []PaperState `json:"inputs" binding:"max=16,dive"`
	Outputs    []PaperState `json:"outputs" binding:"max=16,dive"`
	Command    string       `json:"command" binding:"max=32"`
	Time       time.Time    `json:"time"`
	Signatures []Signature  `json:"signatures" binding:"max=32,dive"`
}

// PaperState is the wire form of one commercial paper state.
// An empty owner is passed through so the contract can reject it by rule.
type PaperState struct {
	Issuer       PartyReference `json:"issuer"`
	Owner        string         `json:"owner" binding:"omitempty,public_key"`
	FaceValue    Amount         `json:"face_value"`
	Issuance     PartyReference `json:"issuance"`
	MaturityDate time.Time      `json:"maturity_date"`
}

// PartyReference is the wire form of a party plus its reference tag.
type PartyReference struct {
	Party     string `json:"party" binding:"required,public_key"`
	Reference string `json:"reference" binding:"max=256"`
}

// Amount is the wire form of a monetary amount in minor units.
type Amount struct {
	Quantity int64  `json:"quantity"`
	Currency string `json:"currency" binding:"required,currency_code"`
}

// Signature is one ed25519 signature over the transaction id.
type Signature struct {
	PublicKey string `json:"public_key" binding:"required,public_key"`
	Signature string `json:"signature" binding:"required,base64"`
}

// ToVerifyRequest converts the wire request into the service input.
// Value errors come back as *apperror.AppError ready for the response.
func (r VerifyRequest) ToVerifyRequest(clientID string) (ports.VerifyRequest, error) {
	inputs, err := toStates(r.Inputs)
	if err != nil {
		return ports.VerifyRequest{}, err
	}
	outputs, err := toStates(r.Outputs)
	if err != nil {
		return ports.VerifyRequest{}, err
	}

	sigs := make([]ports.SubmittedSignature, 0, len(r.Signatures))
	for _, s := range r.Signatures {
		key, err := domain.ParsePublicKey(s.PublicKey)
		if err != nil {
			return ports.VerifyRequest{}, service.FromDomain(err)
		}
		raw, err := base64.StdEncoding.DecodeString(s.Signature)
		if err != nil {
			appErr := apperror.ErrMalformedSignature()
			appErr.Err = err
			return ports.VerifyRequest{}, appErr
		}
		sigs = append(sigs, ports.SubmittedSignature{PublicKey: key, Signature: raw})
	}

	return ports.VerifyRequest{
		Inputs:     inputs,
		Outputs:    outputs,
		Command:    domain.Command(r.Command),
		Time:       r.Time,
		Signatures: sigs,
		ClientID:   clientID,
	}, nil
}

func toStates(in []PaperState) ([]domain.CommercialPaperState, error) {
	out := make([]domain.CommercialPaperState, 0, len(in))
	for _, p := range in {
		st, err := p.ToDomain()
		if err != nil {
			return nil, service.FromDomain(err)
		}
		out = append(out, st)
	}
	return out, nil
}

// ToDomain validates and converts one wire state.
func (p PaperState) ToDomain() (domain.CommercialPaperState, error) {
	issuer, err := p.Issuer.ToDomain()
	if err != nil {
		return domain.CommercialPaperState{}, err
	}
	issuance, err := p.Issuance.ToDomain()
	if err != nil {
		return domain.CommercialPaperState{}, err
	}

	var owner domain.PublicKey
	if p.Owner != "" {
		if owner, err = domain.ParsePublicKey(p.Owner); err != nil {
			return domain.CommercialPaperState{}, err
		}
	}

	faceValue, err := domain.NewAmount(p.FaceValue.Quantity, p.FaceValue.Currency)
	if err != nil {
		return domain.CommercialPaperState{}, err
	}

	return domain.CommercialPaperState{
		Issuer:       issuer,
		Owner:        owner,
		FaceValue:    faceValue,
		Issuance:     issuance,
		MaturityDate: p.MaturityDate,
	}, nil
}

// ToDomain parses the party key and builds the reference.
func (r PartyReference) ToDomain() (domain.PartyReference, error) {
	key, err := domain.ParsePublicKey(r.Party)
	if err != nil {
		return domain.PartyReference{}, err
	}
	return domain.NewPartyReference(key, r.Reference)
}

// FromState renders a domain state in wire form.
func FromState(s domain.CommercialPaperState) PaperState {
	return PaperState{
		Issuer:       PartyReference{Party: s.Issuer.Party.String(), Reference: s.Issuer.Reference},
		Owner:        s.Owner.String(),
		FaceValue:    Amount{Quantity: s.FaceValue.Quantity(), Currency: s.FaceValue.Currency()},
		Issuance:     PartyReference{Party: s.Issuance.Party.String(), Reference: s.Issuance.Reference},
		MaturityDate: s.MaturityDate,
	}
}

// VerdictResponse is the response body for a verification verdict.
type VerdictResponse struct {
	TransactionID string `json:"transaction_id"`
	Command       string `json:"command"`
	Accepted      bool   `json:"accepted"`
	ErrorCode     string `json:"error_code,omitempty"`
	Kind          string `json:"kind,omitempty"`
	Rule          string `json:"rule,omitempty"`
	Reason        string `json:"reason,omitempty"`
	VerifiedAt    string `json:"verified_at"`
}

// ToVerdictResponse converts domain.Verdict to DTO.
func ToVerdictResponse(v *domain.Verdict) VerdictResponse {
	return VerdictResponse{
		TransactionID: v.TransactionID,
		Command:       string(v.Command),
		Accepted:      v.Accepted,
		ErrorCode:     v.ErrorCode,
		Kind:          string(v.Kind),
		Rule:          v.Rule,
		Reason:        v.Reason,
		VerifiedAt:    v.VerifiedAt.UTC().Format(time.RFC3339Nano),
	}
}

// CommandStats is the per-command slice of VerdictStatsResponse.
type CommandStats struct {
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// VerdictStatsResponse is the response body for verdict statistics.
type VerdictStatsResponse struct {
	Period    string                  `json:"period"`
	Total     int64                   `json:"total"`
	Accepted  int64                   `json:"accepted"`
	Rejected  int64                   `json:"rejected"`
	ByCommand map[string]CommandStats `json:"by_command"`
}

// ToVerdictStatsResponse converts ports.VerdictStats to DTO.
func ToVerdictStatsResponse(period string, s *ports.VerdictStats) VerdictStatsResponse {
	resp := VerdictStatsResponse{
		Period:    period,
		Total:     s.Total,
		Accepted:  s.Accepted,
		Rejected:  s.Rejected,
		ByCommand: make(map[string]CommandStats, len(s.ByCommand)),
	}
	for cmd, cs := range s.ByCommand {
		resp.ByCommand[string(cmd)] = CommandStats{Accepted: cs.Accepted, Rejected: cs.Rejected}
	}
	return resp
}
