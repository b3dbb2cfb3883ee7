package handlers

import (
	"errors"
	"net/http"

	"github.com/avigeya/projectboard/internal/dto"
	apierrors "github.com/avigeya/projectboard/internal/errors"
	"github.com/avigeya/projectboard/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProjectHandler serves the project composition endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
	log            *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

// UpdateStages replaces the stage set of a project.
func (h *ProjectHandler) UpdateStages(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.ProjectStageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.UpdateProjectStages(projectID, req.StageIDs); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Status:  "success",
		Message: "Project stages updated successfully",
	})
}

// UpdateMembers replaces the member set of a project.
func (h *ProjectHandler) UpdateMembers(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.ProjectMemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.UpdateProjectMembers(projectID, req.MemberIDs, req.ModifierName); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Status:  "success",
		Message: "Project members updated successfully",
	})
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrProjectNotFound) {
		apierrors.NotFound(c, "Project not found")
		return
	}
	h.log.Error("project operation failed", zap.Error(err))
	apierrors.InternalError(c, "")
}
