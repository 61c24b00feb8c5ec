package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/internal/core/ports/mocks"
	"commercial-paper-verifier/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testCacheTTL = time.Hour

type verificationTestDeps struct {
	svc   *VerificationServiceImpl
	cache *mocks.MockVerdictCache
	repo  *mocks.MockVerdictRepository
	ctrl  *gomock.Controller
}

// setupVerificationService wires real hashing and signatures with mocked storage.
func setupVerificationService(t *testing.T) *verificationTestDeps {
	ctrl := gomock.NewController(t)
	d := &verificationTestDeps{
		cache: mocks.NewMockVerdictCache(ctrl),
		repo:  mocks.NewMockVerdictRepository(ctrl),
		ctrl:  ctrl,
	}
	d.svc = NewVerificationService(
		NewEd25519SignatureService(), NewSHA3HashService(),
		d.cache, d.repo, testCacheTTL, newTestLogger(),
	)
	d.svc.now = func() time.Time { return testTxTime.Add(time.Minute) }
	return d
}

// signedIssue builds an issue request for a paper issued by and to the key with seed 1,
// signed by the given seeds.
func signedIssue(t *testing.T, seeds ...byte) (ports.VerifyRequest, []byte) {
	t.Helper()
	a, _ := testKeyPair(t, 1)
	req := ports.VerifyRequest{
		Outputs:  []domain.CommercialPaperState{testPaper(a, a)},
		Command:  domain.CommandIssue,
		Time:     testTxTime,
		ClientID: "client-1",
	}
	return sign(t, req, seeds...)
}

func sign(t *testing.T, req ports.VerifyRequest, seeds ...byte) (ports.VerifyRequest, []byte) {
	t.Helper()
	txID := NewSHA3HashService().TransactionID(domain.TransactionContext{
		Inputs: req.Inputs, Outputs: req.Outputs, Command: req.Command, Time: req.Time,
	})
	sigSvc := NewEd25519SignatureService()
	req.Signatures = nil
	for _, seed := range seeds {
		pub, priv := testKeyPair(t, seed)
		req.Signatures = append(req.Signatures, ports.SubmittedSignature{PublicKey: pub, Signature: sigSvc.Sign(priv, txID)})
	}
	return req, txID
}

func TestVerificationService_Verify_Accepted(t *testing.T) {
	d := setupVerificationService(t)
	ctx := context.Background()
	req, _ := signedIssue(t, 1)

	d.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, v *domain.Verdict) error {
		assert.True(t, v.Accepted)
		return nil
	})
	d.cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), testCacheTTL).Return(nil)

	verdict, err := d.svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
	assert.Equal(t, domain.CommandIssue, verdict.Command)
	assert.Regexp(t, `^[0-9a-f]{64}$`, verdict.TransactionID)
	assert.Empty(t, verdict.ErrorCode)
	assert.Empty(t, verdict.Rule)
	assert.Equal(t, testTxTime.Add(time.Minute), verdict.VerifiedAt)
}

func TestVerificationService_Verify_RejectedIsAVerdict(t *testing.T) {
	d := setupVerificationService(t)
	ctx := context.Background()
	req, _ := signedIssue(t) // nobody signs

	d.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), testCacheTTL).Return(nil)

	verdict, err := d.svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.False(t, verdict.Accepted)
	assert.Equal(t, domain.KindMissingSignature, verdict.Kind)
	assert.Equal(t, domain.RuleSignerIssuer, verdict.Rule)
	assert.Equal(t, "TX_003", verdict.ErrorCode)
	assert.NotEmpty(t, verdict.Reason)
}

func TestVerificationService_Verify_ContractViolation(t *testing.T) {
	d := setupVerificationService(t)
	ctx := context.Background()

	a, _ := testKeyPair(t, 1)
	st := testPaper(a, a).WithFaceValue(domain.MustAmount(0, "USD"))
	req, _ := sign(t, ports.VerifyRequest{
		Outputs: []domain.CommercialPaperState{st},
		Command: domain.CommandIssue,
		Time:    testTxTime,
	}, 1)

	d.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), testCacheTTL).Return(nil)

	verdict, err := d.svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.False(t, verdict.Accepted)
	assert.Equal(t, domain.KindContractViolation, verdict.Kind)
	assert.Equal(t, domain.RuleIssueFaceValue, verdict.Rule)
	assert.Equal(t, "TX_002", verdict.ErrorCode)
}

func TestVerificationService_Verify_CacheHitSkipsWrites(t *testing.T) {
	d := setupVerificationService(t)
	ctx := context.Background()
	req, _ := signedIssue(t, 1)

	cached := &domain.Verdict{TransactionID: "cached", Command: domain.CommandIssue, Accepted: true}
	d.cache.EXPECT().Get(ctx, gomock.Any()).Return(cached, nil)
	// No Save or Set expected.

	verdict, err := d.svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.Same(t, cached, verdict)
}

func TestVerificationService_Verify_CacheKeyMatchesSignerSet(t *testing.T) {
	d := setupVerificationService(t)
	ctx := context.Background()
	req, txID := signedIssue(t, 1, 2)

	a, _ := testKeyPair(t, 1)
	b, _ := testKeyPair(t, 2)
	wantKey := NewSHA3HashService().VerdictKey(txID, []domain.PublicKey{b, a})

	d.cache.EXPECT().Get(ctx, wantKey).Return(nil, nil)
	d.repo.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(ctx, wantKey, gomock.Any(), testCacheTTL).Return(nil)

	verdict, err := d.svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.True(t, verdict.Accepted, "extra signers are allowed")
}

func TestVerificationService_Verify_StorageFailuresDegrade(t *testing.T) {
	d := setupVerificationService(t)
	ctx := context.Background()
	req, _ := signedIssue(t, 1)

	d.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, errors.New("redis down"))
	d.repo.EXPECT().Save(ctx, gomock.Any()).Return(errors.New("postgres down"))
	d.cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), testCacheTTL).Return(errors.New("redis down"))

	verdict, err := d.svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestVerificationService_Verify_InvalidSignature(t *testing.T) {
	d := setupVerificationService(t)
	ctx := context.Background()
	req, _ := signedIssue(t, 1)

	// Tamper with the transaction after signing.
	req.Outputs[0] = req.Outputs[0].WithFaceValue(domain.MustAmount(999999, "USD"))

	verdict, err := d.svc.Verify(ctx, req)
	require.Error(t, err)
	assert.Nil(t, verdict)
	assert.Equal(t, "SEC_002", apperrorCode(err))
}

func TestVerificationService_Verify_NoCacheNoRepo(t *testing.T) {
	svc := NewVerificationService(NewEd25519SignatureService(), NewSHA3HashService(), nil, nil, 0, newTestLogger())
	req, _ := signedIssue(t, 1)

	verdict, err := svc.Verify(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestVerificationService_Verify_ZeroTTLDisablesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockVerdictCache(ctrl)
	repo := mocks.NewMockVerdictRepository(ctrl)
	svc := NewVerificationService(NewEd25519SignatureService(), NewSHA3HashService(), cache, repo, 0, newTestLogger())
	req, _ := signedIssue(t, 1)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	// cache must not be touched

	_, err := svc.Verify(context.Background(), req)
	require.NoError(t, err)
}

func TestVerificationService_Verify_ConcurrentCallsAgree(t *testing.T) {
	svc := NewVerificationService(NewEd25519SignatureService(), NewSHA3HashService(), nil, nil, 0, newTestLogger())
	req, _ := signedIssue(t) // rejected: missing issuer signature

	const workers = 32
	verdicts := make([]*domain.Verdict, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := svc.Verify(context.Background(), req)
			if err == nil {
				verdicts[i] = v
			}
		}(i)
	}
	wg.Wait()

	for _, v := range verdicts {
		require.NotNil(t, v)
		assert.Equal(t, verdicts[0].TransactionID, v.TransactionID)
		assert.Equal(t, verdicts[0].Accepted, v.Accepted)
		assert.Equal(t, verdicts[0].Rule, v.Rule)
	}
}

func apperrorCode(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
