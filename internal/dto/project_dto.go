package dto

import "github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/models"

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

// UpdateProjectRequest holds the only fields a project update may touch.
// Nil means the field was absent or had the wrong JSON type.
type UpdateProjectRequest struct {
	Title  *string
	Scenes []models.Scene
}

func (r UpdateProjectRequest) Empty() bool {
	return r.Title == nil && r.Scenes == nil
}

type ProjectResponse struct {
	Project *models.Project `json:"project"`
}

type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
}

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type GenerateResponse struct {
	Content string `json:"content"`
}
