package handlers

import (
	"net/http"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.CharityProjectService
}

func NewProjectHandler(projectService *services.CharityProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns every charity project
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject creates a project and invests waiting donations into it
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var request models.CharityProjectCreate
	if !bindJSON(c, &request) {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject applies a partial update to an open project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var request models.CharityProjectUpdate
	if !bindJSON(c, &request) {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project without investments and returns it
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.RemoveProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
