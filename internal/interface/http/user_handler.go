package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/application"
	"github.com/livity/realestate-api/internal/interface/middleware"
	"github.com/livity/realestate-api/pkg/response"
	"github.com/livity/realestate-api/pkg/validation"
)

type UserHandler struct {
	Svc            *application.UserService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, maxUploadBytes int64) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type updateProfileRequest struct {
	Username  string `json:"username" binding:"omitempty,min=3,max=32"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	AvatarURL string `json:"avatar" binding:"omitempty,http_url"`
}

func (h *UserHandler) ToggleFavorite(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	res, err := h.Svc.ToggleFavorite(c.Request.Context(), uid, c.Param("listingId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	msg := "Removed from wishlist"
	if res.Added {
		msg = "Added to wishlist"
	}
	response.Respond(c, http.StatusOK, res, msg, nil)
}

func (h *UserHandler) ListFavorites(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	listings, err := h.Svc.ListFavorites(c.Request.Context(), uid)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusOK, gin.H{"favorites": listings}, "favorites", nil)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusOK, u.Public(), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.UpdateProfileInput{
		Username:  req.Username,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusOK, u.Public(), "profile updated", nil)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	upload, f, err := openImage(c, h.MaxUploadBytes)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if upload == nil {
		fail(c, h.Logger, &application.ValidationError{Message: "Image (field 'image') is required", Fields: []string{imageField}})
		return
	}
	defer f.Close()

	u, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), *upload)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusOK, gin.H{"avatar": u.AvatarURL}, "avatar updated", nil)
}
