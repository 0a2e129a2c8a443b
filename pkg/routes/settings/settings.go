package settings

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"
	"github.com/majeanson/family-social/internal/repositories/person"
	"github.com/majeanson/family-social/internal/repositories/settings"
	"github.com/majeanson/family-social/pkg/context"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/tracing"
)

// Register registers the settings routes
func Register(g *echo.Group) {
	g.GET("", Get)
	g.PUT("", Update)
}

// SettingsResponse is the response for user settings, with defaults applied
type SettingsResponse struct {
	PrimaryPersonID string                             `json:"primary_person_id,omitempty"`
	Palette         []string                           `json:"palette"`
	TypeColors      map[models.RelationshipType]string `json:"type_colors,omitempty"`
}

// toResponse converts settings to a response with the effective palette
func toResponse(s *models.UserSettings) *SettingsResponse {
	return &SettingsResponse{
		PrimaryPersonID: s.PrimaryPersonID,
		Palette:         s.EffectivePalette(),
		TypeColors:      s.TypeColors,
	}
}

// Get handles GET /settings
func Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "SettingsHandler.Get")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	ctx, repo, err := ectoinject.GetContext[settings.SettingsRepository](ctx)
	if err != nil {
		return err
	}

	s, err := repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toResponse(s))
}

// Update handles PUT /settings
func Update(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "SettingsHandler.Update")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	var req models.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, repo, err := ectoinject.GetContext[settings.SettingsRepository](ctx)
	if err != nil {
		return err
	}

	existing, err := repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	// Apply updates
	if req.PrimaryPersonID != nil {
		if *req.PrimaryPersonID != "" {
			ctx, people, err := ectoinject.GetContext[person.PersonRepository](ctx)
			if err != nil {
				return err
			}
			if _, err := people.GetByID(ctx, userID, *req.PrimaryPersonID); err != nil {
				return err
			}
		}
		existing.PrimaryPersonID = *req.PrimaryPersonID
	}
	if req.Palette != nil {
		existing.Palette = *req.Palette
	}
	if req.TypeColors != nil {
		existing.TypeColors = *req.TypeColors
	}

	updated, err := repo.Upsert(ctx, existing)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toResponse(updated))
}
