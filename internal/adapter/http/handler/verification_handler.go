package handler

import (
	"errors"
	"net/http"

	"commercial-paper-verifier/internal/adapter/http/dto"
	"commercial-paper-verifier/internal/adapter/http/middleware"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/pkg/apperror"
	"commercial-paper-verifier/pkg/response"

	"github.com/gin-gonic/gin"
)

// VerificationHandler handles transaction verification.
type VerificationHandler struct {
	verifySvc ports.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(verifySvc ports.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifySvc: verifySvc}
}

// Verify handles POST /api/v1/transactions/verify.
// A rejected transaction is still a 200: the verdict is the result.
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, apperror.ErrBodyTooLarge())
			return
		}
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	in, err := req.ToVerifyRequest(c.GetString(middleware.CtxClientID))
	if err != nil {
		response.Error(c, err)
		return
	}

	verdict, err := h.verifySvc.Verify(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, verdict.TransactionID)
	response.OK(c, dto.ToVerdictResponse(verdict))
}
