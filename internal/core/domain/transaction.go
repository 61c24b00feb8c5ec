package domain

import (
	"errors"
	"time"
)

// Command is the tag of a commercial paper transition.
type Command string

const (
	CommandIssue  Command = "ISSUE"
	CommandMove   Command = "MOVE"
	CommandRedeem Command = "REDEEM"
)

// Valid reports whether c is one of the known commands.
func (c Command) Valid() bool {
	switch c {
	case CommandIssue, CommandMove, CommandRedeem:
		return true
	}
	return false
}

// TransactionContext is everything the verifier needs to judge one
// proposed transition. It is assembled by the transaction layer.
type TransactionContext struct {
	Inputs  []CommercialPaperState
	Outputs []CommercialPaperState
	Command Command
	Signers []PublicKey
	Time    time.Time // ledger-declared transaction time
}

// SignedBy reports whether key is among the transaction's signers.
func (tx TransactionContext) SignedBy(key PublicKey) bool {
	for _, s := range tx.Signers {
		if s.Equal(key) {
			return true
		}
	}
	return false
}

// Verdict is the recorded outcome of verifying one transaction.
type Verdict struct {
	TransactionID string    `json:"transaction_id"`
	Command       Command   `json:"command"`
	Accepted      bool      `json:"accepted"`
	ErrorCode     string    `json:"error_code,omitempty"` // API code of the rejection, set by the service
	Kind          Kind      `json:"kind,omitempty"`
	Rule          string    `json:"rule,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	VerifiedAt    time.Time `json:"verified_at"`
}

// NewVerdict builds a verdict from the verifier's result.
func NewVerdict(txID string, cmd Command, verifyErr error, at time.Time) *Verdict {
	v := &Verdict{TransactionID: txID, Command: cmd, Accepted: verifyErr == nil, VerifiedAt: at}
	if verifyErr != nil {
		v.Reason = verifyErr.Error()
		var e *Error
		if errors.As(verifyErr, &e) {
			v.Kind = e.Kind
			v.Rule = e.Rule
			v.Reason = e.Message
		}
	}
	return v
}
