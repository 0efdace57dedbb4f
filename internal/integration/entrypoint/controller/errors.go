// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/middleware"
)

// statusByCode lists the coded errors that are not plain validation failures.
var statusByCode = map[string]int{
	string(domainerror.ErrCodeCategoryNotFound):            http.StatusNotFound,
	string(domainerror.ErrCodeCategoryNameExists):          http.StatusConflict,
	string(domainerror.ErrCodeTransactionNotFound):         http.StatusNotFound,
	string(domainerror.ErrCodeTransactionCategoryNotFound): http.StatusNotFound,
	string(domainerror.ErrCodeBudgetNotFound):              http.StatusNotFound,
	string(domainerror.ErrCodeBudgetCategoryNotFound):      http.StatusNotFound,
	string(domainerror.ErrCodeBudgetAlreadyExists):         http.StatusConflict,
	string(domainerror.ErrCodeGoalNotFound):                http.StatusNotFound,
	string(domainerror.ErrCodeRecurringNotFound):           http.StatusNotFound,
	string(domainerror.ErrCodeAdviceNotFound):              http.StatusNotFound,
	string(domainerror.ErrCodeAdviceDismissed):             http.StatusConflict,
	string(domainerror.ErrCodeAdviceRefreshSuperseded):     http.StatusConflict,
	string(domainerror.ErrCodeHealthScoreNotFound):         http.StatusNotFound,
}

// codedError extracts the code and message of any domain error.
func codedError(err error) (code, message string, ok bool) {
	var (
		categoryErr    *domainerror.CategoryError
		transactionErr *domainerror.TransactionError
		budgetErr      *domainerror.BudgetError
		goalErr        *domainerror.GoalError
		recurringErr   *domainerror.RecurringError
		adviceErr      *domainerror.AdviceError
		analyticsErr   *domainerror.AnalyticsError
	)
	switch {
	case errors.As(err, &categoryErr):
		return string(categoryErr.Code), categoryErr.Message, true
	case errors.As(err, &transactionErr):
		return string(transactionErr.Code), transactionErr.Message, true
	case errors.As(err, &budgetErr):
		return string(budgetErr.Code), budgetErr.Message, true
	case errors.As(err, &goalErr):
		return string(goalErr.Code), goalErr.Message, true
	case errors.As(err, &recurringErr):
		return string(recurringErr.Code), recurringErr.Message, true
	case errors.As(err, &adviceErr):
		return string(adviceErr.Code), adviceErr.Message, true
	case errors.As(err, &analyticsErr):
		return string(analyticsErr.Code), analyticsErr.Message, true
	}
	return "", "", false
}

// respondError maps a use case error to an HTTP response.
func respondError(ctx *gin.Context, err error, fallback string) {
	code, message, ok := codedError(err)
	if !ok || strings.Contains(code, "-99") {
		slog.Error(fallback, "error", err, "path", ctx.FullPath())
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: fallback,
			Code:  string(domainerror.ErrCodeInternalError),
		})
		return
	}

	status, found := statusByCode[code]
	if !found {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func invalidBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeInvalidBody),
		Details: err.Error(),
	})
}

func invalidQuery(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeInvalidQuery),
	})
}

// profileID returns the profile resolved by middleware.RequireProfile.
// It writes the error response itself when the profile is missing.
func profileID(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: domainerror.ErrMissingProfile.Error(),
			Code:  string(domainerror.ErrCodeMissingProfile),
		})
	}
	return id, ok
}

// pathID parses a UUID path parameter.
func pathID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		invalidQuery(ctx, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
