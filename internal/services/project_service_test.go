package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/database/databasetest"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProjectService(t *testing.T) (*ProjectService, *gorm.DB) {
	t.Helper()
	db := databasetest.New(t)
	return NewProjectService(db, validation.NewValidator()), db
}

func seedUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func strPtr(s string) *string { return &s }

func TestProjectCreate_RoundTrip(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")

	created, err := svc.Create(ctx, owner, &dto.CreateProjectRequest{Title: "T", ContentType: "video-package"})
	require.NoError(t, err)
	assert.Equal(t, owner, created.UserID)

	got, err := svc.GetOwned(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "video-package", got.ContentType)
	require.NotNil(t, got.Scenes)
	assert.Empty(t, got.Scenes)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestProjectCreate_RequiresFields(t *testing.T) {
	svc, db := newProjectService(t)
	owner := seedUser(t, db, "owner@example.com")

	_, err := svc.Create(context.Background(), owner, &dto.CreateProjectRequest{Title: "only title"})
	requireValidation(t, err, "Title and contentType are required")

	_, err = svc.Create(context.Background(), owner, &dto.CreateProjectRequest{ContentType: "blog"})
	requireValidation(t, err, "Title and contentType are required")
}

func TestProjectList_OwnOnlyNewestFirst(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, alice, &dto.CreateProjectRequest{Title: title, ContentType: "blog"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, bob, &dto.CreateProjectRequest{Title: "bob's", ContentType: "blog"})
	require.NoError(t, err)

	projects, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "third", projects[0].Title)
	assert.Equal(t, "second", projects[1].Title)
	assert.Equal(t, "first", projects[2].Title)
	for _, p := range projects {
		assert.Equal(t, alice, p.UserID)
	}

	none, err := svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProjectGetOwned_CollapsesMissingAndForeign(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	project, err := svc.Create(ctx, bob, &dto.CreateProjectRequest{Title: "secret", ContentType: "blog"})
	require.NoError(t, err)

	_, foreign := svc.GetOwned(ctx, project.ID, alice)
	_, missing := svc.GetOwned(ctx, uuid.New(), alice)

	assert.ErrorIs(t, foreign, ErrProjectNotFound)
	assert.ErrorIs(t, missing, ErrProjectNotFound)
	assert.Equal(t, foreign.Error(), missing.Error())
}

func TestProjectUpdate_AllowListedFields(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")

	project, err := svc.Create(ctx, owner, &dto.CreateProjectRequest{Title: "draft", ContentType: "blog"})
	require.NoError(t, err)

	scenes := []models.Scene{
		{ID: "s1", Description: "Opening", ImagePrompt: "sunrise"},
		{ID: "s2", Dialogue: "Hello"},
	}
	updated, err := svc.Update(ctx, project.ID, owner, &dto.UpdateProjectRequest{Title: strPtr("final"), Scenes: scenes})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "blog", updated.ContentType)
	assert.Equal(t, owner, updated.UserID)
	require.Len(t, updated.Scenes, 2)
	assert.Equal(t, "s1", updated.Scenes[0].ID)
	assert.Equal(t, "sunrise", updated.Scenes[0].ImagePrompt)
	assert.Equal(t, "Hello", updated.Scenes[1].Dialogue)
	assert.True(t, updated.UpdatedAt.After(project.UpdatedAt))

	titleOnly, err := svc.Update(ctx, project.ID, owner, &dto.UpdateProjectRequest{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", titleOnly.Title)
	assert.Len(t, titleOnly.Scenes, 2)

	cleared, err := svc.Update(ctx, project.ID, owner, &dto.UpdateProjectRequest{Scenes: []models.Scene{}})
	require.NoError(t, err)
	assert.NotNil(t, cleared.Scenes)
	assert.Empty(t, cleared.Scenes)
}

func TestProjectUpdate_NoFieldsIsNoop(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")

	project, err := svc.Create(ctx, owner, &dto.CreateProjectRequest{Title: "same", ContentType: "blog"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, project.ID, owner, &dto.UpdateProjectRequest{})
	require.NoError(t, err)
	assert.Equal(t, "same", got.Title)
	assert.True(t, got.UpdatedAt.Equal(project.UpdatedAt), "updatedAt should not move: %v vs %v",
		got.UpdatedAt.Format(time.RFC3339Nano), project.UpdatedAt.Format(time.RFC3339Nano))
}

func TestProjectUpdate_ForeignOwner(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	project, err := svc.Create(ctx, bob, &dto.CreateProjectRequest{Title: "bob's", ContentType: "blog"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, project.ID, alice, &dto.UpdateProjectRequest{Title: strPtr("pwned")})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	unchanged, err := svc.GetOwned(ctx, project.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob's", unchanged.Title)
}

func TestProjectUpdate_RejectsBadInput(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")

	project, err := svc.Create(ctx, owner, &dto.CreateProjectRequest{Title: "p", ContentType: "blog"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, project.ID, owner, &dto.UpdateProjectRequest{Title: strPtr("   ")})
	requireValidation(t, err, "Title cannot be empty")

	_, err = svc.Update(ctx, project.ID, owner, &dto.UpdateProjectRequest{Scenes: []models.Scene{{Description: "no id"}}})
	requireValidation(t, err, "Scene at position 0 is missing an id")

	_, err = svc.Update(ctx, project.ID, owner, &dto.UpdateProjectRequest{Scenes: []models.Scene{{ID: "a"}, {ID: "a"}}})
	requireValidation(t, err, `Duplicate scene id "a"`)
}
