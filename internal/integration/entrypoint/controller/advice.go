package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/usecase/advice"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// AdviceController handles advice feed endpoints.
type AdviceController struct {
	refreshUseCase  *advice.RefreshAdviceUseCase
	listUseCase     *advice.ListAdviceUseCase
	markReadUseCase *advice.MarkReadUseCase
	dismissUseCase  *advice.DismissUseCase
}

// NewAdviceController creates a new advice controller instance.
func NewAdviceController(
	refreshUseCase *advice.RefreshAdviceUseCase,
	listUseCase *advice.ListAdviceUseCase,
	markReadUseCase *advice.MarkReadUseCase,
	dismissUseCase *advice.DismissUseCase,
) *AdviceController {
	return &AdviceController{
		refreshUseCase:  refreshUseCase,
		listUseCase:     listUseCase,
		markReadUseCase: markReadUseCase,
		dismissUseCase:  dismissUseCase,
	}
}

// List handles GET /advice requests.
func (c *AdviceController) List(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), advice.ListAdviceInput{
		ProfileID:  profile,
		UnreadOnly: ctx.Query("unread") == "true",
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve advice")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAdviceListResponse(output))
}

// Refresh handles POST /advice/refresh requests.
// A refresh overtaken by a newer one for the same profile answers 409.
func (c *AdviceController) Refresh(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.RefreshAdviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidBody(ctx, err)
		return
	}

	output, err := c.refreshUseCase.Execute(ctx.Request.Context(), advice.RefreshAdviceInput{
		ProfileID: profile,
		Locale:    req.Locale,
	})
	if err != nil {
		respondError(ctx, err, "Failed to refresh advice")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRefreshAdviceResponse(output))
}

// MarkRead handles POST /advice/:id/read requests.
func (c *AdviceController) MarkRead(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}
	adviceID, ok := advicePathID(ctx)
	if !ok {
		return
	}

	item, err := c.markReadUseCase.Execute(ctx.Request.Context(), advice.AdviceActionInput{
		ProfileID: profile,
		AdviceID:  adviceID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to mark advice as read")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAdviceResponse(item))
}

// Dismiss handles POST /advice/:id/dismiss requests.
func (c *AdviceController) Dismiss(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}
	adviceID, ok := advicePathID(ctx)
	if !ok {
		return
	}

	if err := c.dismissUseCase.Execute(ctx.Request.Context(), advice.AdviceActionInput{
		ProfileID: profile,
		AdviceID:  adviceID,
	}); err != nil {
		respondError(ctx, err, "Failed to dismiss advice")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// advicePathID parses the advice id path parameter.
func advicePathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "advice id must be a valid UUID",
			Code:  string(domainerror.ErrCodeInvalidAdviceID),
		})
		return uuid.Nil, false
	}
	return id, true
}
