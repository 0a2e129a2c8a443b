package tree

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"
	"github.com/majeanson/family-social/internal/repositories/person"
	"github.com/majeanson/family-social/internal/repositories/relationship"
	"github.com/majeanson/family-social/internal/repositories/settings"
	"github.com/majeanson/family-social/pkg/context"
	"github.com/majeanson/family-social/pkg/focus"
	"github.com/majeanson/family-social/pkg/layout"
	"github.com/majeanson/family-social/pkg/metrics"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/tracing"
	"github.com/majeanson/family-social/pkg/utils"
)

// Register registers the tree layout and focus routes
func Register(g *echo.Group) {
	g.GET("", GetTree)
	g.GET("/radial", GetRadial)
	g.GET("/generations", GetGenerations)
	g.POST("/focus", SetFocus)
	g.POST("/focus/back", GoBack)
	g.DELETE("/focus", ClearFocus)
	g.GET("/focus", GetFocus)
}

// SetFocusRequest is the request body for focusing a person
type SetFocusRequest struct {
	PersonID string `json:"person_id" validate:"required"`
}

// FocusResponse reports the resolved focus and the navigation history
type FocusResponse struct {
	FocusID string   `json:"focus_id,omitempty"`
	History []string `json:"history,omitempty"`
}

// snapshot is the loaded per-user data every layout endpoint needs
type snapshot struct {
	people        []*models.Person
	relationships []*models.Relationship
	settings      *models.UserSettings
	focusID       string
	nav           *focus.Navigator
}

// loadSnapshot fetches the user's people, relationships and settings, and
// resolves the effective focus against them.
func loadSnapshot(ctx echo.Context, userID string) (*snapshot, error) {
	reqCtx := ctx.Request().Context()

	reqCtx, people, err := ectoinject.GetContext[person.PersonRepository](reqCtx)
	if err != nil {
		return nil, err
	}
	reqCtx, relationships, err := ectoinject.GetContext[relationship.RelationshipRepository](reqCtx)
	if err != nil {
		return nil, err
	}
	reqCtx, settingsRepo, err := ectoinject.GetContext[settings.SettingsRepository](reqCtx)
	if err != nil {
		return nil, err
	}
	reqCtx, registry, err := ectoinject.GetContext[*focus.Registry](reqCtx)
	if err != nil {
		return nil, err
	}

	persons, err := people.List(reqCtx, userID)
	if err != nil {
		return nil, err
	}
	rels, err := relationships.List(reqCtx, userID)
	if err != nil {
		return nil, err
	}
	userSettings, err := settingsRepo.Get(reqCtx, userID)
	if err != nil {
		return nil, err
	}

	nav := registry.For(userID)

	return &snapshot{
		people:        persons,
		relationships: rels,
		settings:      userSettings,
		focusID:       nav.Current(persons, rels, userSettings.PrimaryPersonID),
		nav:           nav,
	}, nil
}

// GetTree handles GET /tree
func GetTree(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "TreeHandler.GetTree")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	snap, err := loadSnapshot(c, userID)
	if err != nil {
		return err
	}

	ctx, caches, err := ectoinject.GetContext[*layout.CacheRegistry](ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	result := caches.For(userID).Tree(snap.focusID, snap.people, snap.relationships, snap.settings)
	metrics.LayoutDuration.WithLabelValues("tree").Observe(time.Since(start).Seconds())
	metrics.LayoutComputationsTotal.WithLabelValues("tree", "ok").Inc()

	if result == nil {
		return c.JSON(http.StatusOK, &models.TreeLayout{})
	}
	return c.JSON(http.StatusOK, result)
}

// GetRadial handles GET /tree/radial
func GetRadial(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "TreeHandler.GetRadial")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	snap, err := loadSnapshot(c, userID)
	if err != nil {
		return err
	}

	ctx, caches, err := ectoinject.GetContext[*layout.CacheRegistry](ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	result := caches.For(userID).Radial(snap.focusID, snap.people, snap.relationships, snap.settings)
	metrics.LayoutDuration.WithLabelValues("radial").Observe(time.Since(start).Seconds())
	metrics.LayoutComputationsTotal.WithLabelValues("radial", "ok").Inc()

	if result == nil {
		return c.JSON(http.StatusOK, &models.RadialLayout{})
	}
	return c.JSON(http.StatusOK, result)
}

// GetGenerations handles GET /tree/generations
func GetGenerations(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "TreeHandler.GetGenerations")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	snap, err := loadSnapshot(c, userID)
	if err != nil {
		return err
	}

	ctx, caches, err := ectoinject.GetContext[*layout.CacheRegistry](ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	result := caches.For(userID).Generations(snap.focusID, snap.people, snap.relationships, snap.settings)
	metrics.LayoutDuration.WithLabelValues("generations").Observe(time.Since(start).Seconds())
	metrics.LayoutComputationsTotal.WithLabelValues("generations", "ok").Inc()

	if result == nil {
		return c.JSON(http.StatusOK, &models.GenerationLayout{})
	}
	return c.JSON(http.StatusOK, result)
}

// SetFocus handles POST /tree/focus
func SetFocus(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "TreeHandler.SetFocus")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	req, err := utils.BindRequest[SetFocusRequest](c)
	if err != nil {
		return err
	}

	ctx, people, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	// Focusing a person that doesn't exist is a 404, not a silent no-op
	if _, err := people.GetByID(ctx, userID, req.PersonID); err != nil {
		return err
	}

	snap, err := loadSnapshot(c, userID)
	if err != nil {
		return err
	}

	snap.nav.SetFocus(req.PersonID)

	return c.JSON(http.StatusOK, &FocusResponse{
		FocusID: req.PersonID,
		History: snap.nav.History(),
	})
}

// GoBack handles POST /tree/focus/back
func GoBack(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "TreeHandler.GoBack")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	snap, err := loadSnapshot(c, userID)
	if err != nil {
		return err
	}

	snap.nav.GoBack()

	return c.JSON(http.StatusOK, &FocusResponse{
		FocusID: snap.nav.Current(snap.people, snap.relationships, snap.settings.PrimaryPersonID),
		History: snap.nav.History(),
	})
}

// ClearFocus handles DELETE /tree/focus
func ClearFocus(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "TreeHandler.ClearFocus")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	snap, err := loadSnapshot(c, userID)
	if err != nil {
		return err
	}

	snap.nav.ClearFocus()

	return c.JSON(http.StatusOK, &FocusResponse{
		FocusID: snap.nav.Current(snap.people, snap.relationships, snap.settings.PrimaryPersonID),
	})
}

// GetFocus handles GET /tree/focus
func GetFocus(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "TreeHandler.GetFocus")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	snap, err := loadSnapshot(c, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &FocusResponse{
		FocusID: snap.focusID,
		History: snap.nav.History(),
	})
}
