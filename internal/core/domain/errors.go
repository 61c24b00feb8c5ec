package domain

import (
	"errors"
	"fmt"
)

// Kind is a stable category of verification failure.
// Callers branch on Kind and Rule, never on the message text.
type Kind string

const (
	KindInvalidValue         Kind = "InvalidValue"
	KindCurrencyMismatch     Kind = "CurrencyMismatch"
	KindMalformedTransaction Kind = "MalformedTransaction"
	KindContractViolation    Kind = "ContractViolation"
	KindMissingSignature     Kind = "MissingSignature"
)

// Rule identifiers carried by *Error.
const (
	RuleAmountNegative   = "CP-AMOUNT-NEGATIVE"
	RuleAmountCurrency   = "CP-AMOUNT-CURRENCY"
	RuleAmountOverflow   = "CP-AMOUNT-OVERFLOW"
	RuleCurrencyMismatch = "CP-AMOUNT-CURRENCY-MISMATCH"
	RulePartyKey         = "CP-PARTY-KEY"

	RuleCommandUnknown = "CP-COMMAND-UNKNOWN"
	RuleTimeMissing    = "CP-TIME-MISSING"
	RuleOwnerMissing   = "CP-OWNER-MISSING"

	RuleIssueCardinality = "CP-ISSUE-CARDINALITY"
	RuleIssueFaceValue   = "CP-ISSUE-FACE-VALUE"
	RuleIssueMaturity    = "CP-ISSUE-MATURITY"

	RuleMoveCardinality = "CP-MOVE-CARDINALITY"
	RuleMoveFields      = "CP-MOVE-FIELDS"
	RuleMoveNoop        = "CP-MOVE-NOOP"
	RuleMoveMatured     = "CP-MOVE-MATURED"

	RuleRedeemCardinality = "CP-REDEEM-CARDINALITY"
	RuleRedeemImmature    = "CP-REDEEM-IMMATURE"

	RuleSignerIssuer = "CP-SIGNER-ISSUER"
	RuleSignerOwner  = "CP-SIGNER-OWNER"
)

// Error is the structured error returned by value constructors and the verifier.
type Error struct {
	Kind    Kind
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Rule, e.Message)
}

func newError(kind Kind, rule, format string, args ...any) *Error {
	return &Error{Kind: kind, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// InvalidValue reports a malformed Amount or PartyReference.
func InvalidValue(rule, format string, args ...any) *Error {
	return newError(KindInvalidValue, rule, format, args...)
}

// CurrencyMismatch reports arithmetic across incompatible currencies.
func CurrencyMismatch(a, b string) *Error {
	return newError(KindCurrencyMismatch, RuleCurrencyMismatch, "currency %s does not match %s", a, b)
}

// MalformedTransaction reports a cardinality or shape problem.
func MalformedTransaction(rule, format string, args ...any) *Error {
	return newError(KindMalformedTransaction, rule, format, args...)
}

// ContractViolation reports a broken business rule.
func ContractViolation(rule, format string, args ...any) *Error {
	return newError(KindContractViolation, rule, format, args...)
}

// MissingSignature reports a required signer absent from the signer set.
func MissingSignature(rule, format string, args ...any) *Error {
	return newError(KindMissingSignature, rule, format, args...)
}

// IsKind reports whether err is (or wraps) a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleOf returns the rule identifier of a structured error, or "" if err is not one.
func RuleOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Rule
}
