package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/analytics/internal/application/usecase/goal"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// GoalController handles saving goal endpoints.
type GoalController struct {
	listUseCase   *goal.ListGoalsUseCase
	getUseCase    *goal.GetGoalUseCase
	createUseCase *goal.CreateGoalUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	getUseCase *goal.GetGoalUseCase,
	createUseCase *goal.CreateGoalUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{ProfileID: profile})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve goals")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		ProfileID: profile,
		GoalID:    goalID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve goal")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	deadline, err := dto.ParseOptionalDate(req.Deadline)
	if err != nil {
		invalidQuery(ctx, "Invalid deadline")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		ProfileID:     profile,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
	})
	if err != nil {
		respondError(ctx, err, "Failed to create goal")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}
