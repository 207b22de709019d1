package handlers

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/services"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	projects, err := h.projectService.List(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(dto.ProjectListResponse{Projects: projects})
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	project, err := h.projectService.Create(c.UserContext(), userID, &req)
	if err != nil {
		if msg, ok := asValidation(err); ok {
			return errorJSON(c, fiber.StatusBadRequest, msg)
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ProjectResponse{Project: project})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	project, err := h.projectService.GetOwned(c.UserContext(), projectID, userID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return notFound(c)
		}
		return err
	}

	return c.JSON(dto.ProjectResponse{Project: project})
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid project ID")
	}

	req, err := parseProjectUpdate(c.Body())
	if err != nil {
		return invalidBody(c)
	}

	project, err := h.projectService.Update(c.UserContext(), projectID, userID, req)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return notFound(c)
		}
		if msg, ok := asValidation(err); ok {
			return errorJSON(c, fiber.StatusBadRequest, msg)
		}
		return fmt.Errorf("update project: %w", err)
	}

	return c.JSON(dto.ProjectResponse{Project: project})
}

func notFound(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusNotFound, "Project not found or forbidden")
}

// parseProjectUpdate keeps title when it is a JSON string and scenes when it
// is a JSON array. Other keys, and those two with other types, are dropped.
func parseProjectUpdate(body []byte) (*dto.UpdateProjectRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("body must be a JSON object")
	}

	req := &dto.UpdateProjectRequest{}

	if v, ok := raw["title"]; ok && jsonKind(v) == '"' {
		var title string
		if err := json.Unmarshal(v, &title); err != nil {
			return nil, err
		}
		req.Title = &title
	}

	if v, ok := raw["scenes"]; ok && jsonKind(v) == '[' {
		scenes := []models.Scene{}
		if err := json.Unmarshal(v, &scenes); err != nil {
			return nil, err
		}
		req.Scenes = scenes
	}

	return req, nil
}

// jsonKind returns the first significant byte of a raw JSON value.
func jsonKind(v json.RawMessage) byte {
	for _, b := range v {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
