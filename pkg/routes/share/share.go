package share

import (
	"encoding/json"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"
	"github.com/majeanson/family-social/internal/repositories/person"
	"github.com/majeanson/family-social/internal/repositories/relationship"
	"github.com/majeanson/family-social/pkg/context"
	"github.com/majeanson/family-social/pkg/events"
	"github.com/majeanson/family-social/pkg/metrics"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/share"
	"github.com/majeanson/family-social/pkg/tracing"
	"github.com/majeanson/family-social/pkg/utils"
)

// Register registers the share link routes
func Register(g *echo.Group) {
	g.POST("", Create)
	g.GET("/:code", Get)
	g.DELETE("/:code", Delete)
}

// CreateShareRequest is the request body for creating a share link
type CreateShareRequest struct {
	TTL string `json:"ttl" validate:"required"`
}

// SharePayload is the read-only snapshot stored behind a share code
type SharePayload struct {
	People        []*models.Person       `json:"people"`
	Relationships []*models.Relationship `json:"relationships"`
}

// ShareResponse is the response for a created share link
type ShareResponse struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

// Create handles POST /share. The link stores a snapshot of the caller's
// data at creation time; later edits don't leak through it.
func Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ShareHandler.Create")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	req, err := utils.BindRequest[CreateShareRequest](c)
	if err != nil {
		return err
	}

	ctx, people, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}
	ctx, relationships, err := ectoinject.GetContext[relationship.RelationshipRepository](ctx)
	if err != nil {
		return err
	}
	ctx, svc, err := ectoinject.GetContext[*share.Service](ctx)
	if err != nil {
		return err
	}

	persons, err := people.List(ctx, userID)
	if err != nil {
		return err
	}
	rels, err := relationships.List(ctx, userID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(SharePayload{People: persons, Relationships: rels})
	if err != nil {
		metrics.ShareLinksTotal.WithLabelValues("create", "error").Inc()
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to build share snapshot")
	}

	link, err := svc.Create(ctx, userID, payload, req.TTL)
	if err != nil {
		metrics.ShareLinksTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.ShareLinksTotal.WithLabelValues("create", "ok").Inc()

	ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx)
	if err == nil && emitter != nil {
		emitter.EmitShareCreated(ctx, userID, link.Code)
	}

	return c.JSON(http.StatusCreated, &ShareResponse{
		Code:      link.Code,
		ExpiresAt: link.ExpiresAt.Format("2006-01-02T15:04:05Z"),
		CreatedAt: link.CreatedAt.Format("2006-01-02T15:04:05Z"),
	})
}

// Get handles GET /share/:code. No auth: anyone holding the code can read
// the snapshot until it expires.
func Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ShareHandler.Get")
	defer span.End()

	code := c.Param("code")
	if code == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "share code required")
	}

	ctx, svc, err := ectoinject.GetContext[*share.Service](ctx)
	if err != nil {
		return err
	}

	payload, err := svc.Get(ctx, code)
	if err != nil {
		metrics.ShareLinksTotal.WithLabelValues("get", "miss").Inc()
		return err
	}

	metrics.ShareLinksTotal.WithLabelValues("get", "ok").Inc()

	return c.JSONBlob(http.StatusOK, payload)
}

// Delete handles DELETE /share/:code
func Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "ShareHandler.Delete")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	code := c.Param("code")
	if code == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "share code required")
	}

	ctx, svc, err := ectoinject.GetContext[*share.Service](ctx)
	if err != nil {
		return err
	}

	if err := svc.Delete(ctx, userID, code); err != nil {
		return err
	}

	metrics.ShareLinksTotal.WithLabelValues("delete", "ok").Inc()

	return c.NoContent(http.StatusNoContent)
}
