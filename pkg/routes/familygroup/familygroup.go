package familygroup

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"
	"github.com/majeanson/family-social/internal/repositories/familygroup"
	"github.com/majeanson/family-social/internal/repositories/person"
	"github.com/majeanson/family-social/internal/repositories/relationship"
	"github.com/majeanson/family-social/internal/repositories/settings"
	"github.com/majeanson/family-social/pkg/context"
	"github.com/majeanson/family-social/pkg/groups"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/tracing"
	"github.com/majeanson/family-social/pkg/utils"
)

// Register registers the family group routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
	g.PUT("/:id", Rename)
	g.DELETE("/:id", Delete)
	g.PUT("/override", SetOverride)
	g.DELETE("/override/:personId", DeleteOverride)
}

// detect loads everything group detection needs and runs it
func detect(c echo.Context, userID string) ([]models.FamilyGroup, error) {
	ctx := c.Request().Context()

	ctx, people, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return nil, err
	}
	ctx, relationships, err := ectoinject.GetContext[relationship.RelationshipRepository](ctx)
	if err != nil {
		return nil, err
	}
	ctx, settingsRepo, err := ectoinject.GetContext[settings.SettingsRepository](ctx)
	if err != nil {
		return nil, err
	}
	ctx, repo, err := ectoinject.GetContext[familygroup.FamilyGroupRepository](ctx)
	if err != nil {
		return nil, err
	}

	persons, err := people.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	rels, err := relationships.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	userSettings, err := settingsRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := repo.ListRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	overrides, err := repo.ListOverrides(ctx, userID)
	if err != nil {
		return nil, err
	}

	return groups.Detect(persons, rels, userSettings, records, overrides), nil
}

// List handles GET /groups
func List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "FamilyGroupHandler.List")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	result, err := detect(c, userID)
	if err != nil {
		return err
	}

	if result == nil {
		result = []models.FamilyGroup{}
	}
	return c.JSON(http.StatusOK, result)
}

// Create handles POST /groups
func Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "FamilyGroupHandler.Create")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	req, err := utils.BindRequest[models.CreateFamilyGroupRequest](c)
	if err != nil {
		return err
	}

	ctx, repo, err := ectoinject.GetContext[familygroup.FamilyGroupRepository](ctx)
	if err != nil {
		return err
	}

	rec := &models.FamilyGroupRecord{
		UserID: userID,
		Name:   req.Name,
		Custom: true,
	}

	created, err := repo.CreateRecord(ctx, rec)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Rename handles PUT /groups/:id. The target can be a detected group, in
// which case the rename is persisted against the detected id.
func Rename(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "FamilyGroupHandler.Rename")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "group ID required")
	}

	req, err := utils.BindRequest[models.RenameFamilyGroupRequest](c)
	if err != nil {
		return err
	}

	result, err := detect(c, userID)
	if err != nil {
		return err
	}

	custom := false
	found := false
	for _, group := range result {
		if group.ID == id {
			found = true
			custom = group.Custom
			break
		}
	}
	if !found {
		return httperror.NewHTTPError(http.StatusNotFound, "family group not found")
	}

	ctx, repo, err := ectoinject.GetContext[familygroup.FamilyGroupRepository](ctx)
	if err != nil {
		return err
	}

	rec := &models.FamilyGroupRecord{
		ID:     id,
		UserID: userID,
		Name:   req.Name,
		Custom: custom,
	}

	updated, err := repo.UpsertRecord(ctx, rec)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /groups/:id. Only custom groups can be deleted;
// detected groups exist as long as their family edges do.
func Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "FamilyGroupHandler.Delete")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "group ID required")
	}

	ctx, repo, err := ectoinject.GetContext[familygroup.FamilyGroupRepository](ctx)
	if err != nil {
		return err
	}

	if err := repo.DeleteRecord(ctx, userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SetOverride handles PUT /groups/override
func SetOverride(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "FamilyGroupHandler.SetOverride")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	req, err := utils.BindRequest[models.SetGroupOverrideRequest](c)
	if err != nil {
		return err
	}

	ctx, people, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	if _, err := people.GetByID(ctx, userID, req.PersonID); err != nil {
		return err
	}

	ctx, repo, err := ectoinject.GetContext[familygroup.FamilyGroupRepository](ctx)
	if err != nil {
		return err
	}

	override := &models.FamilyGroupOverride{
		UserID:   userID,
		PersonID: req.PersonID,
		GroupID:  req.GroupID,
	}

	saved, err := repo.SetOverride(ctx, override)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, saved)
}

// DeleteOverride handles DELETE /groups/override/:personId
func DeleteOverride(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "FamilyGroupHandler.DeleteOverride")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	personID := c.Param("personId")
	if personID == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "person ID required")
	}

	ctx, repo, err := ectoinject.GetContext[familygroup.FamilyGroupRepository](ctx)
	if err != nil {
		return err
	}

	if err := repo.DeleteOverride(ctx, userID, personID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
