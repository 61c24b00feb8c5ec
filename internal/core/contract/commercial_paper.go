// Package contract holds the commercial paper verification rules.
//
// Verify is a pure function of its TransactionContext: it performs no I/O,
// keeps no state and returns the same result for the same input, so every
// node can re-run it independently and reach the same verdict.
package contract

import (
	"time"

	"commercial-paper-verifier/internal/core/domain"
)

// Verify decides whether tx is a legal commercial paper transition.
// It returns nil to accept, or a *domain.Error describing the first
// broken rule. Checks run in order: command tag, cardinality, field
// rules, then required signers.
func Verify(tx domain.TransactionContext) error {
	if tx.Time.IsZero() {
		return domain.MalformedTransaction(domain.RuleTimeMissing, "transaction time is required")
	}

	switch tx.Command {
	case domain.CommandIssue:
		return verifyIssue(tx)
	case domain.CommandMove:
		return verifyMove(tx)
	case domain.CommandRedeem:
		return verifyRedeem(tx)
	default:
		return domain.MalformedTransaction(domain.RuleCommandUnknown, "unknown command %q", tx.Command)
	}
}

func verifyIssue(tx domain.TransactionContext) error {
	if len(tx.Inputs) != 0 || len(tx.Outputs) != 1 {
		return domain.MalformedTransaction(domain.RuleIssueCardinality,
			"issue takes no inputs and one output, got %d inputs and %d outputs", len(tx.Inputs), len(tx.Outputs))
	}
	out := tx.Outputs[0]

	if out.Owner.IsZero() {
		return domain.ContractViolation(domain.RuleOwnerMissing, "issued paper must have an owner")
	}
	if !out.FaceValue.IsPositive() {
		return domain.ContractViolation(domain.RuleIssueFaceValue, "face value %s must be positive", out.FaceValue)
	}
	if !out.MaturityDate.After(tx.Time) {
		return domain.ContractViolation(domain.RuleIssueMaturity,
			"maturity %s must be after transaction time %s", stamp(out.MaturityDate), stamp(tx.Time))
	}

	return requireSigner(tx, out.Issuer.Party, domain.RuleSignerIssuer, "issuer")
}

func verifyMove(tx domain.TransactionContext) error {
	if len(tx.Inputs) != 1 || len(tx.Outputs) != 1 {
		return domain.MalformedTransaction(domain.RuleMoveCardinality,
			"move takes one input and one output, got %d inputs and %d outputs", len(tx.Inputs), len(tx.Outputs))
	}
	in, out := tx.Inputs[0], tx.Outputs[0]

	if !out.EqualExceptOwner(in) {
		return domain.ContractViolation(domain.RuleMoveFields, "only the owner may change on a move")
	}
	if out.Owner.IsZero() {
		return domain.ContractViolation(domain.RuleOwnerMissing, "moved paper must have an owner")
	}
	if out.Owner.Equal(in.Owner) {
		return domain.ContractViolation(domain.RuleMoveNoop, "move must change the owner")
	}
	if !tx.Time.Before(in.MaturityDate) {
		return domain.ContractViolation(domain.RuleMoveMatured,
			"paper matured at %s and can no longer be moved", stamp(in.MaturityDate))
	}

	return requireSigner(tx, in.Owner, domain.RuleSignerOwner, "owner")
}

func verifyRedeem(tx domain.TransactionContext) error {
	if len(tx.Inputs) != 1 || len(tx.Outputs) != 0 {
		return domain.MalformedTransaction(domain.RuleRedeemCardinality,
			"redeem takes one input and no outputs, got %d inputs and %d outputs", len(tx.Inputs), len(tx.Outputs))
	}
	in := tx.Inputs[0]

	if tx.Time.Before(in.MaturityDate) {
		return domain.ContractViolation(domain.RuleRedeemImmature,
			"paper matures at %s and cannot be redeemed at %s", stamp(in.MaturityDate), stamp(tx.Time))
	}

	if err := requireSigner(tx, in.Owner, domain.RuleSignerOwner, "owner"); err != nil {
		return err
	}
	return requireSigner(tx, in.Issuer.Party, domain.RuleSignerIssuer, "issuer")
}

func requireSigner(tx domain.TransactionContext, key domain.PublicKey, rule, role string) error {
	if key.IsZero() || !tx.SignedBy(key) {
		return domain.MissingSignature(rule, "%s %s did not sign", role, key)
	}
	return nil
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
