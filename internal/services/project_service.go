package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/validation"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrProjectNotFound covers both a missing project and one owned by someone
// else. Callers must not be able to tell the two apart.
var ErrProjectNotFound = errors.New("project not found")

var createProjectMessages = map[string]string{
	"Title.required":       "Title and contentType are required",
	"ContentType.required": "Title and contentType are required",
}

type ProjectService struct {
	db        *gorm.DB
	validator *validation.Validator
}

func NewProjectService(db *gorm.DB, v *validation.Validator) *ProjectService {
	return &ProjectService{db: db, validator: v}
}

// List returns the user's projects, newest first.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*models.Project, error) {
	if err := s.validator.Struct(req, createProjectMessages); err != nil {
		return nil, err
	}

	project := models.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		ContentType: req.ContentType,
		Scenes:      datatypes.JSONSlice[models.Scene]{},
	}

	if err := s.db.WithContext(ctx).Omit("User").Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// GetOwned is the ownership guard: it returns the project only when userID
// owns it.
func (s *ProjectService) GetOwned(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if project.UserID != userID {
		return nil, ErrProjectNotFound
	}
	return &project, nil
}

// Update writes title and scenes, and nothing else, on a project the caller
// owns. Concurrent updates are last-write-wins.
func (s *ProjectService) Update(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetOwned(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		return project, nil
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validation.New("Title", "Title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Scenes != nil {
		if err := validateScenes(req.Scenes); err != nil {
			return nil, err
		}
		updates["scenes"] = datatypes.JSONSlice[models.Scene](req.Scenes)
	}

	err = s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", projectID, userID).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetOwned(ctx, projectID, userID)
}

func validateScenes(scenes []models.Scene) error {
	seen := make(map[string]struct{}, len(scenes))
	for i, scene := range scenes {
		if scene.ID == "" {
			return validation.New("Scenes", fmt.Sprintf("Scene at position %d is missing an id", i))
		}
		if _, dup := seen[scene.ID]; dup {
			return validation.New("Scenes", fmt.Sprintf("Duplicate scene id %q", scene.ID))
		}
		seen[scene.ID] = struct{}{}
	}
	return nil
}
