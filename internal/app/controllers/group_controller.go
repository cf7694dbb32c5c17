package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/app/services"
	"github.com/retrieverhq/retriever-study/internal/middleware"
	"github.com/retrieverhq/retriever-study/internal/pkg/helpers"
)

// GroupController handles study group related operations
type GroupController struct {
	groupService      services.GroupService
	membershipService services.MembershipService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService, membershipService services.MembershipService) *GroupController {
	return &GroupController{
		groupService:      groupService,
		membershipService: membershipService,
	}
}

// CreateGroup handles study group creation
// @Summary Create a study group
// @Description Creates a new study group owned by the authenticated user. The owner is automatically the first member.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group data"
// @Success 201 {object} dto.APIResponse{data=dto.GroupSummary} "Group created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	ownerID := middleware.GetUserID(ctx)

	group, err := c.groupService.CreateGroup(ctx, ownerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(group, "Study group created successfully"))
}

// GetAllGroups handles listing study groups with pagination
// @Summary List study groups
// @Description Retrieves a paginated list of study groups, optionally filtered by course code
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course query string false "Filter by course code"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse} "Groups retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups [get]
func (c *GroupController) GetAllGroups(ctx *gin.Context) {
	if courseCode := ctx.Query("course"); courseCode != "" {
		groups, err := c.groupService.GetGroupsByCourse(ctx, courseCode)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(groups, "Groups retrieved successfully"))
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)

	response, err := c.groupService.GetAllGroups(ctx, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response, "Groups retrieved successfully"))
}

// GetGroupByID handles retrieving a specific study group
// @Summary Get group by ID
// @Description Retrieves a specific study group by its ID
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupSummary} "Group retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroupByID(ctx *gin.Context) {
	group, err := c.groupService.GetGroupByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(group, "Group retrieved successfully"))
}

// UpdateGroup handles updating a study group
// @Summary Update a study group
// @Description Updates a study group's details. Only the owner can update a group. Changing title, description or tags refreshes the group's embedding.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Updated group data"
// @Success 200 {object} dto.APIResponse{data=dto.GroupSummary} "Group updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	var req dto.UpdateGroupRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	userID := middleware.GetUserID(ctx)

	group, err := c.groupService.UpdateGroup(ctx, ctx.Param("id"), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(group, "Group updated successfully"))
}

// JoinGroup handles a membership join request
// @Summary Join a study group
// @Description Adds the authenticated user to the group. Joining a group the user already belongs to succeeds without change. Fails with 409 when the group is full.
// @Tags groups, membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupSummary} "Joined group successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 409 {object} dto.ErrorResponse "Group is at full capacity"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id}/join [post]
func (c *GroupController) JoinGroup(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	group, err := c.membershipService.JoinGroup(ctx, ctx.Param("id"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(group, "Joined group successfully"))
}

// LeaveGroup handles a membership leave request
// @Summary Leave a study group
// @Description Removes the authenticated user from the group. Leaving a group the user is not in succeeds without change.
// @Tags groups, membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupSummary} "Left group successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id}/leave [post]
func (c *GroupController) LeaveGroup(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	group, err := c.membershipService.LeaveGroup(ctx, ctx.Param("id"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(group, "Left group successfully"))
}

// GetMyGroups handles listing the authenticated user's groups
// @Summary List my groups
// @Description Retrieves the study groups the authenticated user is a member of
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GroupSummary} "Groups retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/mine [get]
func (c *GroupController) GetMyGroups(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	groups, err := c.groupService.GetGroupsForUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(groups, "Groups retrieved successfully"))
}
