package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"starwars-api/internal/domains/character"
	"starwars-api/internal/shared/middleware"
	"starwars-api/internal/shared/response"
)

// CharacterHandler handles HTTP requests for the character domain
type CharacterHandler struct {
	service character.Service
}

// NewCharacterHandler creates handler instance
func NewCharacterHandler(service character.Service) *CharacterHandler {
	return &CharacterHandler{
		service: service,
	}
}

// ========================================
// CRUD ENDPOINTS
// ========================================

// Create handles POST /characters
func (h *CharacterHandler) Create(c *gin.Context) {
	// STEP 1: PARSE + VALIDATE BODY
	var req character.CreateCharacterRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	// STEP 2: CALL SERVICE
	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: 201 with the stored record
	c.Header("Location", "/characters/"+created.ID.String())
	response.Success(c, http.StatusCreated, created)
}

// FindAll handles GET /characters?page=&limit=
func (h *CharacterHandler) FindAll(c *gin.Context) {
	var query character.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}
	if err := query.Validate(); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	page, err := h.service.FindAll(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// FindOne handles GET /characters/:id
func (h *CharacterHandler) FindOne(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	found, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, found)
}

// FindByName handles GET /characters/name/:name
// The name is matched literally, case included.
func (h *CharacterHandler) FindByName(c *gin.Context) {
	found, err := h.service.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, found)
}

// Update handles PATCH /characters/:id
func (h *CharacterHandler) Update(c *gin.Context) {
	// STEP 1: PARSE ID
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	// STEP 2: PARSE + VALIDATE BODY
	var req character.UpdateCharacterRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	// STEP 3: MERGE + PERSIST
	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Remove handles DELETE /characters/:id; success is 200 with no body
func (h *CharacterHandler) Remove(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Empty(c, http.StatusOK)
}

// Seed handles POST /characters/seed
func (h *CharacterHandler) Seed(c *gin.Context) {
	seeded, err := h.service.Seed(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	log.Info().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Int("count", len(seeded)).
		Msg("Seed request completed")

	response.Success(c, http.StatusCreated, seeded)
}

// ========================================
// HELPERS
// ========================================

type validatable interface {
	Validate() error
}

// bindAndValidate decodes the JSON body and runs the DTO's rules.
// It writes the 400 itself and reports whether the handler may continue.
func (h *CharacterHandler) bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return false
	}

	if err := req.Validate(); err != nil {
		var details interface{} = err.Error()
		if errs, ok := err.(validation.Errors); ok {
			details = errs
		}
		response.BadRequest(c, "Validation failed", details)
		return false
	}

	return true
}

func (h *CharacterHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "Validation failed (uuid is expected)", gin.H{"id": raw})
		return uuid.Nil, false
	}
	return id, true
}

// handleError maps domain errors onto HTTP responses.
// Anything unrecognised is a 500 and its text stays in the log.
func (h *CharacterHandler) handleError(c *gin.Context, err error) {
	status := character.ToHTTPStatus(err)
	code := character.ToErrorCode(err)

	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("Character request failed")
		_ = c.Error(err)
		response.InternalServerError(c)
		return
	}

	response.ErrorResponse(c, status, code, err.Error(), nil)
}

// RegisterRoutes mounts the character endpoints under /characters.
// Static segments (seed, name) are registered before /:id.
func (h *CharacterHandler) RegisterRoutes(r gin.IRouter) {
	characters := r.Group("/characters")
	{
		characters.POST("", h.Create)
		characters.GET("", h.FindAll)
		characters.POST("/seed", h.Seed)
		characters.GET("/name/:name", h.FindByName)
		characters.GET("/:id", h.FindOne)
		characters.PATCH("/:id", h.Update)
		characters.DELETE("/:id", h.Remove)
	}
}
