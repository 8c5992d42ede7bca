package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

// requireUser returns the authenticated user or writes a 401 response.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a uuid path parameter or writes a 400 response.
func parseIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid " + label + " ID format",
			Code:    string(domainerror.ErrCodeMissingFields),
			Details: name,
		})
		return uuid.Nil, false
	}
	return id, true
}

// badRequest writes a 400 response for malformed input.
func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeMissingFields),
	})
}

// handleLedgerError writes the response for an error returned by a ledger use case.
func handleLedgerError(ctx *gin.Context, operation string, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		statusCode := statusCodeForKind(ledgerErr.Kind)
		if statusCode >= http.StatusInternalServerError {
			slog.Error("Ledger operation failed",
				"operation", operation,
				"code", ledgerErr.Code,
				"error", err,
			)
		}
		if ledgerErr.Retryable() {
			ctx.Header("Retry-After", "1")
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error:   ledgerErr.Message,
			Code:    string(ledgerErr.Code),
			Details: ledgerErr.Field,
		})
		return
	}

	slog.Error("Unexpected error",
		"operation", operation,
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForKind maps ledger error kinds to HTTP status codes.
func statusCodeForKind(kind domainerror.ErrorKind) int {
	switch kind {
	case domainerror.KindValidationFailed:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindStateConflict:
		return http.StatusConflict
	case domainerror.KindTransactionFailure, domainerror.KindNumberGenerationExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
