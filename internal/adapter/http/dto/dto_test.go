package dto

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testKey(t *testing.T, seed byte) domain.PublicKey {
	t.Helper()
	s := make([]byte, ed25519.SeedSize)
	s[0] = seed
	k, err := domain.NewPublicKey(ed25519.NewKeyFromSeed(s).Public().(ed25519.PublicKey))
	require.NoError(t, err)
	return k
}

func validState(t *testing.T) PaperState {
	a := testKey(t, 1)
	return FromState(domain.CommercialPaperState{
		Issuer:       domain.PartyReference{Party: a, Reference: "CP-001"},
		Owner:        a,
		FaceValue:    domain.MustAmount(1000, "USD"),
		Issuance:     domain.PartyReference{Party: a, Reference: "ISSUE-001"},
		MaturityDate: testTime.Add(24 * time.Hour),
	})
}

func bind(t *testing.T, body any) (VerifyRequest, error) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	var req VerifyRequest
	err = c.ShouldBindJSON(&req)
	return req, err
}

func appCode(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// --- Binding / custom validators ---

func TestBind_ValidRequest(t *testing.T) {
	sig := base64.StdEncoding.EncodeToString(make([]byte, 64))
	req, err := bind(t, VerifyRequest{
		Outputs:    []PaperState{validState(t)},
		Command:    "ISSUE",
		Time:       testTime,
		Signatures: []Signature{{PublicKey: testKey(t, 1).String(), Signature: sig}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ISSUE", req.Command)
	assert.Len(t, req.Outputs, 1)
}

func TestBind_UnknownCommandIsNotABindingError(t *testing.T) {
	_, err := bind(t, VerifyRequest{Command: "BURN"})
	assert.NoError(t, err)
}

func TestBind_InvalidPublicKey(t *testing.T) {
	st := validState(t)
	st.Issuer.Party = "rsa:AAAA"
	_, err := bind(t, VerifyRequest{Outputs: []PaperState{st}, Command: "ISSUE"})
	assert.ErrorContains(t, err, "public_key")
}

func TestBind_EmptyOwnerAllowed(t *testing.T) {
	st := validState(t)
	st.Owner = ""
	_, err := bind(t, VerifyRequest{Outputs: []PaperState{st}, Command: "ISSUE"})
	assert.NoError(t, err)
}

func TestBind_InvalidCurrency(t *testing.T) {
	st := validState(t)
	st.FaceValue.Currency = "usd"
	_, err := bind(t, VerifyRequest{Outputs: []PaperState{st}, Command: "ISSUE"})
	assert.ErrorContains(t, err, "currency_code")
}

func TestBind_SignatureNotBase64(t *testing.T) {
	_, err := bind(t, VerifyRequest{
		Command:    "ISSUE",
		Signatures: []Signature{{PublicKey: testKey(t, 1).String(), Signature: "!!not base64!!"}},
	})
	assert.Error(t, err)
}

func TestCurrencyCodeRe(t *testing.T) {
	for _, ok := range []string{"USD", "EUR", "GBP"} {
		assert.True(t, currencyCodeRe.MatchString(ok), ok)
	}
	for _, bad := range []string{"", "US", "usd", "USDT", "U5D"} {
		assert.False(t, currencyCodeRe.MatchString(bad), bad)
	}
}

// --- Conversion ---

func TestToVerifyRequest(t *testing.T) {
	a := testKey(t, 1)
	rawSig := bytes.Repeat([]byte{7}, 64)

	in := VerifyRequest{
		Inputs:     []PaperState{validState(t)},
		Outputs:    []PaperState{validState(t)},
		Command:    "MOVE",
		Time:       testTime,
		Signatures: []Signature{{PublicKey: a.String(), Signature: base64.StdEncoding.EncodeToString(rawSig)}},
	}

	out, err := in.ToVerifyRequest("client-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CommandMove, out.Command)
	assert.Equal(t, "client-1", out.ClientID)
	assert.True(t, out.Time.Equal(testTime))
	require.Len(t, out.Inputs, 1)
	assert.True(t, out.Inputs[0].Owner.Equal(a))
	assert.Equal(t, "CP-001", out.Inputs[0].Issuer.Reference)
	assert.Equal(t, int64(1000), out.Inputs[0].FaceValue.Quantity())
	assert.Equal(t, []ports.SubmittedSignature{{PublicKey: a, Signature: rawSig}}, out.Signatures)
}

func TestToVerifyRequest_RoundTripsState(t *testing.T) {
	st := validState(t)
	dom, err := st.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, st, FromState(dom))
}

func TestToVerifyRequest_EmptyOwnerIsZeroKey(t *testing.T) {
	st := validState(t)
	st.Owner = ""

	out, err := VerifyRequest{Outputs: []PaperState{st}}.ToVerifyRequest("c")
	require.NoError(t, err)
	assert.True(t, out.Outputs[0].Owner.IsZero())
}

func TestToVerifyRequest_NegativeAmount(t *testing.T) {
	st := validState(t)
	st.FaceValue.Quantity = -1

	_, err := VerifyRequest{Outputs: []PaperState{st}}.ToVerifyRequest("c")
	assert.Equal(t, "VAL_001", appCode(err))
	assert.Equal(t, domain.RuleAmountNegative, domain.RuleOf(err))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.RuleAmountNegative, appErr.Rule)
}

func TestToVerifyRequest_BadKeys(t *testing.T) {
	st := validState(t)
	st.Issuance.Party = "ed25519:AAAA"

	_, err := VerifyRequest{Inputs: []PaperState{st}}.ToVerifyRequest("c")
	assert.Equal(t, "VAL_001", appCode(err))

	_, err = VerifyRequest{
		Signatures: []Signature{{PublicKey: "ed25519:short", Signature: ""}},
	}.ToVerifyRequest("c")
	assert.Equal(t, "VAL_001", appCode(err))
}

func TestToVerifyRequest_BadSignatureEncoding(t *testing.T) {
	_, err := VerifyRequest{
		Signatures: []Signature{{PublicKey: testKey(t, 1).String(), Signature: "%%%"}},
	}.ToVerifyRequest("c")
	assert.Equal(t, "SEC_001", appCode(err))
}

func TestToVerdictResponse(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 5, time.FixedZone("X", 3600))
	resp := ToVerdictResponse(&domain.Verdict{
		TransactionID: "ab",
		Command:       domain.CommandRedeem,
		Accepted:      false,
		ErrorCode:     "TX_003",
		Kind:          domain.KindMissingSignature,
		Rule:          domain.RuleSignerOwner,
		Reason:        "owner must sign",
		VerifiedAt:    at,
	})

	assert.Equal(t, "REDEEM", resp.Command)
	assert.Equal(t, "TX_003", resp.ErrorCode)
	assert.Equal(t, "MissingSignature", resp.Kind)
	assert.Equal(t, "2024-03-01T11:00:00.000000005Z", resp.VerifiedAt)
}

func TestToVerdictStatsResponse(t *testing.T) {
	stats := &ports.VerdictStats{}
	stats.Add(domain.CommandIssue, true, 4)
	stats.Add(domain.CommandIssue, false, 1)

	resp := ToVerdictStatsResponse("day", stats)
	assert.Equal(t, "day", resp.Period)
	assert.Equal(t, int64(5), resp.Total)
	assert.Equal(t, CommandStats{Accepted: 4, Rejected: 1}, resp.ByCommand["ISSUE"])
}
