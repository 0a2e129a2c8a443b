package person

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"
	"github.com/majeanson/family-social/internal/repositories/person"
	"github.com/majeanson/family-social/pkg/context"
	"github.com/majeanson/family-social/pkg/events"
	"github.com/majeanson/family-social/pkg/metrics"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/tracing"
	"github.com/majeanson/family-social/pkg/utils"
)

// Register registers the person routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.POST("", Create)
	g.GET("/:id", Get)
	g.PUT("/:id", Update)
	g.DELETE("/:id", Delete)
}

// PersonResponse is the response for a person
type PersonResponse struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name,omitempty"`
	Nickname    string          `json:"nickname,omitempty"`
	DisplayName string          `json:"display_name"`
	Birthday    string          `json:"birthday,omitempty"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Address     *models.Address `json:"address,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// toResponse converts a person model to a response
func toResponse(p *models.Person) *PersonResponse {
	resp := &PersonResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Nickname:    p.Nickname,
		DisplayName: p.DisplayName(),
		PhotoURL:    p.PhotoURL,
		Tags:        p.Tags,
		Notes:       p.Notes,
		Address:     p.Address,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.Birthday != nil {
		resp.Birthday = p.Birthday.Format("2006-01-02")
	}
	return resp
}

// List handles GET /people
func List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PersonHandler.List")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	ctx, repo, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	people, err := repo.List(ctx, userID)
	if err != nil {
		return err
	}

	responses := make([]*PersonResponse, len(people))
	for i, p := range people {
		responses[i] = toResponse(p)
	}

	return c.JSON(http.StatusOK, responses)
}

// Create handles POST /people
func Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PersonHandler.Create")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	req, err := utils.BindRequest[models.CreatePersonRequest](c)
	if err != nil {
		return err
	}

	ctx, repo, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	p := &models.Person{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Nickname:  req.Nickname,
		PhotoURL:  req.PhotoURL,
		Tags:      req.Tags,
		Notes:     req.Notes,
		Address:   req.Address,
	}

	if req.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "invalid birthday")
		}
		p.Birthday = &birthday
	}

	created, err := repo.Create(ctx, p)
	if err != nil {
		return err
	}

	metrics.PeopleTotal.WithLabelValues("create").Inc()

	ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx)
	if err == nil && emitter != nil {
		emitter.EmitPersonCreated(ctx, created)
	}

	return c.JSON(http.StatusCreated, toResponse(created))
}

// Get handles GET /people/:id
func Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PersonHandler.Get")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "person ID required")
	}

	ctx, repo, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	p, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toResponse(p))
}

// Update handles PUT /people/:id
func Update(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PersonHandler.Update")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "person ID required")
	}

	ctx, repo, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	existing, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	var req models.UpdatePersonRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Apply updates
	if req.FirstName != nil {
		if *req.FirstName == "" {
			return httperror.NewHTTPError(http.StatusBadRequest, "first_name cannot be empty")
		}
		existing.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.LastName = *req.LastName
	}
	if req.Nickname != nil {
		existing.Nickname = *req.Nickname
	}
	if req.Birthday != nil {
		if *req.Birthday == "" {
			existing.Birthday = nil
		} else {
			birthday, err := time.Parse("2006-01-02", *req.Birthday)
			if err != nil {
				return httperror.NewHTTPError(http.StatusBadRequest, "invalid birthday")
			}
			existing.Birthday = &birthday
		}
	}
	if req.PhotoURL != nil {
		existing.PhotoURL = *req.PhotoURL
	}
	if req.Tags != nil {
		existing.Tags = *req.Tags
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}
	if req.Address != nil {
		existing.Address = req.Address
	}

	updated, err := repo.Update(ctx, existing)
	if err != nil {
		return err
	}

	metrics.PeopleTotal.WithLabelValues("update").Inc()

	ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx)
	if err == nil && emitter != nil {
		emitter.EmitPersonUpdated(ctx, updated)
	}

	return c.JSON(http.StatusOK, toResponse(updated))
}

// Delete handles DELETE /people/:id
func Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PersonHandler.Delete")
	defer span.End()

	userID := context.GetUserID(ctx)
	if userID == "" {
		return httperror.NewHTTPError(http.StatusUnauthorized, "user ID required")
	}

	id := c.Param("id")
	if id == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "person ID required")
	}

	ctx, repo, err := ectoinject.GetContext[person.PersonRepository](ctx)
	if err != nil {
		return err
	}

	relationshipIDs, err := repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	metrics.PeopleTotal.WithLabelValues("delete").Inc()

	ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx)
	if err == nil && emitter != nil {
		emitter.EmitPersonDeleted(ctx, userID, id, relationshipIDs)
	}

	return c.NoContent(http.StatusNoContent)
}
