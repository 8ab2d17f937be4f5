package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starwars-api/internal/domains/character"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req *character.CreateCharacterRequest) (*character.Character, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*character.Character)
	return c, args.Error(1)
}

func (m *mockService) FindAll(ctx context.Context, page, limit int) (*character.Page[character.Character], error) {
	args := m.Called(ctx, page, limit)
	p, _ := args.Get(0).(*character.Page[character.Character])
	return p, args.Error(1)
}

func (m *mockService) FindOne(ctx context.Context, id uuid.UUID) (*character.Character, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*character.Character)
	return c, args.Error(1)
}

func (m *mockService) FindByName(ctx context.Context, name string) (*character.Character, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*character.Character)
	return c, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id uuid.UUID, req *character.UpdateCharacterRequest) (*character.Character, error) {
	args := m.Called(ctx, id, req)
	c, _ := args.Get(0).(*character.Character)
	return c, args.Error(1)
}

func (m *mockService) Remove(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) Seed(ctx context.Context) ([]*character.Character, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]*character.Character)
	return cs, args.Error(1)
}

func setupRouter(svc character.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true
	r := gin.New()
	NewCharacterHandler(svc).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body
}

func strPtr(s string) *string { return &s }

func luke() *character.Character {
	at := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
	return &character.Character{
		ID:        uuid.MustParse("0b7c5f4e-1f3d-4b6a-9a1e-2f9d6c3b8e10"),
		Name:      "Luke Skywalker",
		Episodes:  []character.Episode{character.EpisodeNewHope},
		Planet:    strPtr("Tatooine"),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// ========================================
// POST /characters
// ========================================

func TestCreate_Returns201WithRecord(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *character.CreateCharacterRequest) bool {
		return req.Name == "Luke Skywalker" && len(req.Episodes) == 1 && *req.Planet == "Tatooine"
	})).Return(luke(), nil).Once()

	w := do(r, http.MethodPost, "/characters", `{"name":"Luke Skywalker","episodes":["NEWHOPE"],"planet":"Tatooine"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/characters/0b7c5f4e-1f3d-4b6a-9a1e-2f9d6c3b8e10", w.Header().Get("Location"))
	assert.JSONEq(t, `{
		"id":"0b7c5f4e-1f3d-4b6a-9a1e-2f9d6c3b8e10",
		"name":"Luke Skywalker",
		"episodes":["NEWHOPE"],
		"planet":"Tatooine",
		"species":null,
		"affiliation":null,
		"createdAt":"2024-05-04T00:00:00Z",
		"updatedAt":"2024-05-04T00:00:00Z"
	}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestCreate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"unknown field", `{"name":"Luke","episodes":[],"lightsaber":"green"}`},
		{"missing name", `{"episodes":["NEWHOPE"]}`},
		{"missing episodes", `{"name":"Luke"}`},
		{"invalid episode", `{"name":"Luke","episodes":["HOLIDAY_SPECIAL"]}`},
		{"wrong type", `{"name":42,"episodes":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			r := setupRouter(svc)

			w := do(r, http.MethodPost, "/characters", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "BAD_REQUEST", decodeError(t, w).Error.Code)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_DuplicateNameIs409(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, character.ErrDuplicateName).Once()

	w := do(r, http.MethodPost, "/characters", `{"name":"Luke Skywalker","episodes":[]}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "DUPLICATE_NAME", body.Error.Code)
	assert.Equal(t, "Character with this name already exists", body.Error.Message)
}

func TestCreate_UnexpectedErrorIs500WithoutLeak(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp 10.0.0.3:5432: refused")).Once()

	w := do(r, http.MethodPost, "/characters", `{"name":"Luke Skywalker","episodes":[]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

// ========================================
// GET /characters
// ========================================

func TestFindAll_DefaultsAndEnvelope(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	page := character.Paginate([]character.Character{*luke()}, 1, 1, 10)
	svc.On("FindAll", mock.Anything, 1, 10).Return(&page, nil).Once()

	w := do(r, http.MethodGet, "/characters", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got["data"], 1)
	assert.EqualValues(t, 1, got["total"])
	assert.EqualValues(t, 1, got["totalPages"])
	assert.Equal(t, false, got["hasNext"])
	assert.Equal(t, false, got["hasPrev"])
	svc.AssertExpectations(t)
}

func TestFindAll_PassesQuery(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	page := character.Paginate([]character.Character{}, 25, 2, 5)
	svc.On("FindAll", mock.Anything, 2, 5).Return(&page, nil).Once()

	w := do(r, http.MethodGet, "/characters?page=2&limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"data":[],"total":25,"page":2,"limit":5,"totalPages":5,"hasNext":true,"hasPrev":true}`,
		w.Body.String())
}

func TestFindAll_RejectsBadQuery(t *testing.T) {
	for _, query := range []string{
		"?page=0",
		"?page=-3",
		"?limit=0",
		"?limit=101",
		"?page=0&limit=101",
		"?page=abc",
		"?limit=1.5",
	} {
		t.Run(query, func(t *testing.T) {
			svc := new(mockService)
			r := setupRouter(svc)

			w := do(r, http.MethodGet, "/characters"+query, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// ========================================
// GET /characters/:id and /characters/name/:name
// ========================================

func TestFindOne(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	found := luke()
	missing := uuid.New()
	svc.On("FindOne", mock.Anything, found.ID).Return(found, nil).Once()
	svc.On("FindOne", mock.Anything, missing).
		Return(nil, &character.NotFoundError{Field: "ID", Value: missing.String()}).Once()

	w := do(r, http.MethodGet, "/characters/"+found.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Luke Skywalker"`)

	w = do(r, http.MethodGet, "/characters/"+missing.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "CHARACTER_NOT_FOUND", body.Error.Code)
	assert.Contains(t, body.Error.Message, missing.String())
}

func TestFindOne_MalformedIDIs400(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	w := do(r, http.MethodGet, "/characters/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestFindByName_DecodesPathAndMatchesLiterally(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	svc.On("FindByName", mock.Anything, "Luke Skywalker").Return(luke(), nil).Once()
	svc.On("FindByName", mock.Anything, "luke skywalker").
		Return(nil, &character.NotFoundError{Field: "name", Value: "luke skywalker"}).Once()

	w := do(r, http.MethodGet, "/characters/name/Luke%20Skywalker", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/characters/name/luke%20skywalker", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

// ========================================
// PATCH /characters/:id
// ========================================

func TestUpdate(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	updated := luke()
	updated.Planet = strPtr("Dagobah")
	svc.On("Update", mock.Anything, updated.ID, mock.MatchedBy(func(req *character.UpdateCharacterRequest) bool {
		return req.Name == nil && req.Episodes == nil && *req.Planet == "Dagobah"
	})).Return(updated, nil).Once()

	w := do(r, http.MethodPatch, "/characters/"+updated.ID.String(), `{"planet":"Dagobah"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"planet":"Dagobah"`)
	svc.AssertExpectations(t)
}

func TestUpdate_ErrorStatuses(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{"not found", "/characters/" + id.String(), `{"planet":"Hoth"}`, &character.NotFoundError{Field: "ID", Value: id.String()}, http.StatusNotFound},
		{"duplicate", "/characters/" + id.String(), `{"name":"Han Solo"}`, character.ErrDuplicateName, http.StatusConflict},
		{"malformed id", "/characters/123", `{"planet":"Hoth"}`, nil, http.StatusBadRequest},
		{"empty name", "/characters/" + id.String(), `{"name":""}`, nil, http.StatusBadRequest},
		{"unknown field", "/characters/" + id.String(), `{"id":"` + id.String() + `"}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			r := setupRouter(svc)
			if tt.err != nil {
				svc.On("Update", mock.Anything, id, mock.Anything).Return(nil, tt.err).Once()
			}

			w := do(r, http.MethodPatch, tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code)
			if tt.err == nil {
				svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

// ========================================
// DELETE /characters/:id
// ========================================

func TestRemove(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	id := uuid.New()
	svc.On("Remove", mock.Anything, id).Return(nil).Once()
	svc.On("Remove", mock.Anything, id).Return(&character.NotFoundError{Field: "ID", Value: id.String()}).Once()

	w := do(r, http.MethodDelete, "/characters/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodDelete, "/characters/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/characters/xyz", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ========================================
// POST /characters/seed
// ========================================

func TestSeed(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	svc.On("Seed", mock.Anything).Return([]*character.Character{luke()}, nil).Once()
	svc.On("Seed", mock.Anything).Return([]*character.Character{}, nil).Once()

	w := do(r, http.MethodPost, "/characters/seed", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	var first []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Len(t, first, 1)

	w = do(r, http.MethodPost, "/characters/seed", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSeed_FailureIs500(t *testing.T) {
	svc := new(mockService)
	r := setupRouter(svc)

	svc.On("Seed", mock.Anything).Return(nil, character.ErrUniqueViolation).Once()

	w := do(r, http.MethodPost, "/characters/seed", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
