package relationship

import (
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
	"github.com/majeanson/family-social/pkg/tracing"
	"github.com/majeanson/family-social/pkg/utils"
)

// Register registers the relationship routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
	g.GET("/:id", Get)
	g.DELETE("/:id", Delete)
}

// RelationshipResponse is the response for a relationship
type RelationshipResponse struct {
	ID          string                  `json:"id"`
	PersonAID   string                  `json:"person_a_id"`
	PersonBID   string                  `json:"person_b_id"`
	Type        models.RelationshipType `json:"type"`
	ReverseType models.RelationshipType `json:"reverse_type,omitempty"`
	CreatedAt   string                  `json:"created_at"`
}

// toResponse converts a relationship model to a response
func toResponse(rel *models.Relationship) *RelationshipResponse {
	return &RelationshipResponse{
		ID:          rel.ID,
		PersonAID:   rel.PersonAID,
		PersonBID:   rel.PersonBID,
		Type:        rel.Type,
		ReverseType: rel.ReverseType,
		CreatedAt:   rel.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// List handles GET /relationships
func List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "RelationshipHandler.List")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	ctx, repo, err := ectoinject.GetContext[relationship.RelationshipRepository](ctx)
	if err != nil {
		return err
	}

	var relationships []*models.Relationship
	if personID := c.QueryParam("person_id"); personID != "" {
		relationships, err = repo.ListByPerson(ctx, userID, personID)
	} else {
		relationships, err = repo.List(ctx, userID)
	}
	if err != nil {
		return err
	}

	responses := make([]*RelationshipResponse, len(relationships))
	for i, rel := range relationships {
		responses[i] = toResponse(rel)
	}

	return c.JSON(http.StatusOK, responses)
}

// Create handles POST /relationships
func Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "RelationshipHandler.Create")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	req, err := utils.BindRequest[models.CreateRelationshipRequest](c)
	if err != nil {
		return err
	}

	if !req.Type.IsKnown() {
		return httperror.NewHTTPError(http.StatusBadRequest, "unknown relationship type")
	}
	if req.ReverseType != "" && !req.ReverseType.IsKnown() {
		return httperror.NewHTTPError(http.StatusBadRequest, "unknown reverse relationship type")
	}

	ctx, people, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	// Both endpoints must exist and belong to the caller
	if _, err := people.GetByID(ctx, userID, req.PersonAID); err != nil {
		return err
	}
	if _, err := people.GetByID(ctx, userID, req.PersonBID); err != nil {
		return err
	}

	ctx, repo, err := ectoinject.GetContext[relationship.RelationshipRepository](ctx)
	if err != nil {
		return err
	}

	rel := &models.Relationship{
		UserID:      userID,
		PersonAID:   req.PersonAID,
		PersonBID:   req.PersonBID,
		Type:        req.Type,
		ReverseType: req.ReverseType,
	}

	created, err := repo.Create(ctx, rel)
	if err != nil {
		return err
	}

	metrics.RelationshipsTotal.WithLabelValues("create").Inc()

	ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx)
	if err == nil && emitter != nil {
		emitter.EmitRelationshipCreated(ctx, created)
	}

	return c.JSON(http.StatusCreated, toResponse(created))
}

// Get handles GET /relationships/:id
func Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "RelationshipHandler.Get")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "relationship ID required")
	}

	ctx, repo, err := ectoinject.GetContext[relationship.RelationshipRepository](ctx)
	if err != nil {
		return err
	}

	rel, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toResponse(rel))
}

// Delete handles DELETE /relationships/:id
func Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "RelationshipHandler.Delete")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "relationship ID required")
	}

	ctx, repo, err := ectoinject.GetContext[relationship.RelationshipRepository](ctx)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	metrics.RelationshipsTotal.WithLabelValues("delete").Inc()

	ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx)
	if err == nil && emitter != nil {
		emitter.EmitRelationshipDeleted(ctx, userID, id)
	}

	return c.NoContent(http.StatusNoContent)
}
