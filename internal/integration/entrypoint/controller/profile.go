package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/coach/internal/application/usecase/progression"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/dto"
)

// ProfileController handles progression endpoints.
type ProfileController struct {
	onboardUseCase  *progression.OnboardProfileUseCase
	progressUseCase *progression.GetProgressUseCase
	awardUseCase    *progression.AwardXPUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	onboardUseCase *progression.OnboardProfileUseCase,
	progressUseCase *progression.GetProgressUseCase,
	awardUseCase *progression.AwardXPUseCase,
) *ProfileController {
	return &ProfileController{
		onboardUseCase:  onboardUseCase,
		progressUseCase: progressUseCase,
		awardUseCase:    awardUseCase,
	}
}

// Onboard handles POST /profile requests. Repeated calls return the existing profile.
func (c *ProfileController) Onboard(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.OnboardProfileRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body: "+err.Error())
			return
		}
	}

	output, err := c.onboardUseCase.Execute(ctx.Request.Context(), progression.OnboardProfileInput{
		UserID:   userID,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToProfileResponse(output.Profile))
}

// Progress handles GET /profile requests.
func (c *ProfileController) Progress(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.progressUseCase.Execute(ctx.Request.Context(), progression.GetProgressInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output))
}

// Award handles POST /profile/awards requests.
func (c *ProfileController) Award(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.AwardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	output, err := c.awardUseCase.Execute(ctx.Request.Context(), progression.AwardXPInput{
		UserID:    userID,
		Action:    req.Action,
		SourceKey: req.SourceKey,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAwardResponse(output))
}
