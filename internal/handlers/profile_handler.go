package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"profile-api/internal/models"
	"profile-api/internal/services"
	"profile-api/pkg/lambda"
)

// ProfileHandler handles profile-related requests for every transport
type ProfileHandler struct {
	profileService services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// @Summary List profiles
// @Description Get every profile ordered by id
// @Tags profiles
// @Produce json
// @Success 200 {array} models.Profile
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/profile [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	c.JSON(h.list(c.Request.Context()))
}

// @Summary Get a profile
// @Description Get a profile by its id
// @Tags profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} models.Profile
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/profile/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(h.get(c.Request.Context(), c.Param("id")))
}

// @Summary Create a profile
// @Description Create a profile. The email must not belong to another profile.
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body services.CreateProfileRequest true "Profile data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 413 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req services.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(decodeErrorResponse(err))
		return
	}

	c.JSON(h.create(c.Request.Context(), &req))
}

// @Summary Update a profile
// @Description Overwrite email and age of a profile. Names cannot be changed.
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path int true "Profile ID"
// @Param profile body services.UpdateProfileRequest true "Contact data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/profile/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(decodeErrorResponse(err))
		return
	}

	c.JSON(h.update(c.Request.Context(), c.Param("id"), &req))
}

// @Summary Update a profile addressed by body id
// @Description Same as PUT /api/profile/{id} with the id taken from the body
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body services.UpdateProfileRequest true "Contact data with id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/profile [put]
func (h *ProfileHandler) UpdateProfileByBody(c *gin.Context) {
	h.UpdateProfile(c)
}

// @Summary Delete a profile
// @Tags profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/profile/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	c.JSON(h.delete(c.Request.Context(), c.Param("id")))
}

// Lambda-compatible handler methods

// HandleList handles profile listing for Lambda
func (h *ProfileHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return lambda.JSON(h.list(ctx))
}

// HandleGet handles profile retrieval for Lambda
func (h *ProfileHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return lambda.JSON(h.get(ctx, req.PathParams["id"]))
}

// HandleCreate handles profile creation for Lambda
func (h *ProfileHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var createReq services.CreateProfileRequest
	if err := json.Unmarshal(req.Body, &createReq); err != nil {
		return lambda.JSON(decodeErrorResponse(err))
	}

	return lambda.JSON(h.create(ctx, &createReq))
}

// HandleUpdate handles profile updates for Lambda. Without an id path
// parameter the id is read from the body.
func (h *ProfileHandler) HandleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var updateReq services.UpdateProfileRequest
	if err := json.Unmarshal(req.Body, &updateReq); err != nil {
		return lambda.JSON(decodeErrorResponse(err))
	}

	return lambda.JSON(h.update(ctx, req.PathParams["id"], &updateReq))
}

// HandleDelete handles profile deletion for Lambda
func (h *ProfileHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	return lambda.JSON(h.delete(ctx, req.PathParams["id"]))
}

func (h *ProfileHandler) list(ctx context.Context) (int, interface{}) {
	profiles, err := h.profileService.ListProfiles(ctx)
	if err != nil {
		return errorResponse(err)
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	return http.StatusOK, profiles
}

func (h *ProfileHandler) get(ctx context.Context, rawID string) (int, interface{}) {
	id, ok := parseID(rawID)
	if !ok {
		return invalidIDResponse()
	}

	profile, err := h.profileService.GetProfile(ctx, id)
	if err != nil {
		return errorResponse(err)
	}
	return http.StatusOK, profile
}

func (h *ProfileHandler) create(ctx context.Context, req *services.CreateProfileRequest) (int, interface{}) {
	if _, err := h.profileService.CreateProfile(ctx, req); err != nil {
		return errorResponse(err)
	}
	return http.StatusOK, MessageResponse{Msg: MsgOK}
}

// update resolves the target id. A path id wins over a body id.
func (h *ProfileHandler) update(ctx context.Context, rawID string, req *services.UpdateProfileRequest) (int, interface{}) {
	var id uint
	switch {
	case rawID != "":
		parsed, ok := parseID(rawID)
		if !ok {
			return invalidIDResponse()
		}
		id = parsed
	case req.ID != nil && *req.ID > 0:
		id = *req.ID
	default:
		return invalidIDResponse()
	}

	if _, err := h.profileService.UpdateProfile(ctx, id, req); err != nil {
		return errorResponse(err)
	}
	return http.StatusOK, MessageResponse{Msg: MsgOK}
}

func (h *ProfileHandler) delete(ctx context.Context, rawID string) (int, interface{}) {
	id, ok := parseID(rawID)
	if !ok {
		return invalidIDResponse()
	}

	if err := h.profileService.DeleteProfile(ctx, id); err != nil {
		return errorResponse(err)
	}
	return http.StatusOK, MessageResponse{Msg: MsgOK}
}

// parseID accepts positive base-10 integers only
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
