package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/app/services"
	"github.com/retrieverhq/retriever-study/internal/middleware"
	"github.com/retrieverhq/retriever-study/internal/pkg/helpers"
)

// SearchController handles semantic search and recommendation endpoints
type SearchController struct {
	recommendationService services.RecommendationService
}

// NewSearchController creates a new SearchController
func NewSearchController(recommendationService services.RecommendationService) *SearchController {
	return &SearchController{
		recommendationService: recommendationService,
	}
}

// SearchGroups handles semantic group search
// @Summary Search study groups
// @Description Ranks study groups against a free-text query by embedding similarity. Results are ordered by descending score.
// @Tags search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param limit query int false "Maximum number of results (default: 10)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=[]dto.RankedGroup} "Search results"
// @Failure 400 {object} dto.ErrorResponse "Empty search query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 503 {object} dto.ErrorResponse "Embedding provider unavailable"
// @Router /search [get]
func (c *SearchController) SearchGroups(ctx *gin.Context) {
	query := ctx.Query("q")
	limit := helpers.ParseLimitParam(ctx, services.DefaultSearchLimit)

	results, err := c.recommendationService.Search(ctx, query, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(results, "Search completed successfully"))
}

// GetRecommendations handles personalized group recommendations
// @Summary Get group recommendations
// @Description Ranks study groups against the authenticated user's profile embedding. The profile embedding is computed and stored on first use.
// @Tags search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of results (default: 5)" default(5) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=[]dto.RankedGroup} "Recommendations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "User profile not found"
// @Failure 503 {object} dto.ErrorResponse "Embedding provider unavailable"
// @Router /recommendations [get]
func (c *SearchController) GetRecommendations(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	limit := helpers.ParseLimitParam(ctx, services.DefaultRecommendLimit)

	results, err := c.recommendationService.Recommend(ctx, userID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(results, "Recommendations retrieved successfully"))
}
