package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/share"
)

// TestAPIHelpers contains helper functions for API testing
type TestAPIHelpers struct {
	t      *testing.T
	e      *echo.Echo
	userID string
}

func NewTestAPIHelpers(t *testing.T) *TestAPIHelpers {
	e := echo.New()

	// Add test auth middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get("X-User-ID")
			if userID == "" {
				userID = "test-user"
			}
			c.Set("user_id", userID)
			return next(c)
		}
	})

	return &TestAPIHelpers{
		t:      t,
		e:      e,
		userID: "test-user",
	}
}

func (h *TestAPIHelpers) MakeRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", h.userID)

	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func TestPersonAPI_Validation(t *testing.T) {
	t.Run("CreatePerson_ValidRequest", func(t *testing.T) {
		req := map[string]any{
			"first_name": "Margaret",
			"last_name":  "Hall",
			"nickname":   "Peggy",
			"birthday":   "1952-03-14",
			"tags":       []string{"maternal"},
			"address": map[string]any{
				"city":    "Portland",
				"country": "US",
			},
		}

		data, err := json.Marshal(req)
		require.NoError(t, err)

		var parsed models.CreatePersonRequest
		err = json.Unmarshal(data, &parsed)
		require.NoError(t, err)

		assert.Equal(t, "Margaret", parsed.FirstName)
		assert.Equal(t, "1952-03-14", parsed.Birthday)
		require.NotNil(t, parsed.Address)
		assert.Equal(t, "Portland", parsed.Address.City)
	})

	t.Run("CreatePerson_MissingFirstName", func(t *testing.T) {
		req := map[string]any{
			"last_name": "Hall",
		}

		// Validate that first_name is required
		_, hasFirstName := req["first_name"]
		assert.False(t, hasFirstName, "first_name should be missing for this test")
	})

	t.Run("UpdatePerson_PartialFields", func(t *testing.T) {
		// Only the fields present in the body should apply
		data := []byte(`{"nickname": "Peg"}`)

		var parsed models.UpdatePersonRequest
		err := json.Unmarshal(data, &parsed)
		require.NoError(t, err)

		require.NotNil(t, parsed.Nickname)
		assert.Equal(t, "Peg", *parsed.Nickname)
		assert.Nil(t, parsed.FirstName)
		assert.Nil(t, parsed.Birthday)
	})
}

func TestRelationshipAPI_Validation(t *testing.T) {
	t.Run("CreateRelationship_ValidRequest", func(t *testing.T) {
		req := models.CreateRelationshipRequest{
			PersonAID: "p1",
			PersonBID: "p2",
			Type:      models.RelTypeParent,
		}

		data, err := json.Marshal(req)
		require.NoError(t, err)

		var parsed models.CreateRelationshipRequest
		err = json.Unmarshal(data, &parsed)
		require.NoError(t, err)

		assert.True(t, parsed.Type.IsKnown())
		assert.Equal(t, models.RelTypeChild, parsed.Type.Inverse())
	})

	t.Run("CreateRelationship_UnknownType", func(t *testing.T) {
		typ := models.RelationshipType("nemesis")

		assert.False(t, typ.IsKnown())
	})

	t.Run("CreateRelationship_SelfPair", func(t *testing.T) {
		req := models.CreateRelationshipRequest{
			PersonAID: "p1",
			PersonBID: "p1",
			Type:      models.RelTypeFriend,
		}

		// Self pairs are rejected before the insert
		assert.Equal(t, req.PersonAID, req.PersonBID)
	})

	t.Run("Normalize_FillsReverseType", func(t *testing.T) {
		rel := models.Relationship{
			PersonAID: "p1",
			PersonBID: "p2",
			Type:      models.RelTypeGrandparent,
		}
		rel.Normalize()

		assert.Equal(t, models.RelTypeGrandchild, rel.ReverseType)
	})
}

func TestShareAPI_Validation(t *testing.T) {
	t.Run("CreateShare_KnownTTLs", func(t *testing.T) {
		for _, name := range []string{"1h", "24h", "7d", "30d"} {
			_, ok := share.TTLs[name]
			assert.True(t, ok, "ttl %q should be accepted", name)
		}
	})

	t.Run("CreateShare_UnknownTTL", func(t *testing.T) {
		_, ok := share.TTLs["90d"]
		assert.False(t, ok)
	})

	t.Run("SharePayload_RoundTrip", func(t *testing.T) {
		payload := map[string]any{
			"people": []map[string]any{
				{"id": "p1", "first_name": "Margaret"},
			},
			"relationships": []map[string]any{
				{"id": "r1", "person_a_id": "p1", "person_b_id": "p2", "type": "parent"},
			},
		}

		data, err := json.Marshal(payload)
		require.NoError(t, err)

		var parsed map[string]any
		err = json.Unmarshal(data, &parsed)
		require.NoError(t, err)

		assert.NotNil(t, parsed["people"])
		assert.NotNil(t, parsed["relationships"])
	})
}

func TestSettingsAPI_Validation(t *testing.T) {
	t.Run("UpdateSettings_PartialFields", func(t *testing.T) {
		data := []byte(`{"primary_person_id": "p1"}`)

		var parsed models.UpdateSettingsRequest
		err := json.Unmarshal(data, &parsed)
		require.NoError(t, err)

		require.NotNil(t, parsed.PrimaryPersonID)
		assert.Equal(t, "p1", *parsed.PrimaryPersonID)
		assert.Nil(t, parsed.Palette)
		assert.Nil(t, parsed.TypeColors)
	})

	t.Run("TypeColors_KnownTypesOnly", func(t *testing.T) {
		colors := map[models.RelationshipType]string{
			models.RelTypeSpouse: "#e11d48",
			models.RelTypeFriend: "#0ea5e9",
		}

		for typ := range colors {
			assert.True(t, typ.IsKnown())
		}
	})

	t.Run("DefaultPalette_NonEmpty", func(t *testing.T) {
		s := &models.UserSettings{UserID: "test-user"}

		assert.NotEmpty(t, s.EffectivePalette())
	})
}

func TestFamilyGroupAPI_Validation(t *testing.T) {
	t.Run("Rename_RequiresName", func(t *testing.T) {
		req := map[string]any{}

		_, hasName := req["name"]
		assert.False(t, hasName, "name should be missing for this test")
	})

	t.Run("SetOverride_ValidRequest", func(t *testing.T) {
		data := []byte(`{"person_id": "p1", "group_id": "fam-p2"}`)

		var parsed models.SetGroupOverrideRequest
		err := json.Unmarshal(data, &parsed)
		require.NoError(t, err)

		assert.Equal(t, "p1", parsed.PersonID)
		assert.Equal(t, "fam-p2", parsed.GroupID)
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("HealthResponse", func(t *testing.T) {
		response := map[string]any{
			"status":  "healthy",
			"version": "1.0.0",
			"checks": map[string]any{
				"database": map[string]any{
					"status":  "healthy",
					"latency": "5ms",
				},
				"redis": map[string]any{
					"status": "healthy",
				},
				"kafka": map[string]any{
					"status": "healthy",
				},
			},
		}

		data, err := json.Marshal(response)
		require.NoError(t, err)

		var parsed map[string]any
		err = json.Unmarshal(data, &parsed)
		require.NoError(t, err)

		assert.Equal(t, "healthy", parsed["status"])
		checks, ok := parsed["checks"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, checks, "database")
		assert.Contains(t, checks, "redis")
	})

	t.Run("UnauthenticatedRequest", func(t *testing.T) {
		h := NewTestAPIHelpers(t)
		h.e.GET("/health", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		rec := h.MakeRequest(http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
