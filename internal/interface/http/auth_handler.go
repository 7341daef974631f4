package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/application"
	"github.com/livity/realestate-api/internal/interface/middleware"
	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/response"
	"github.com/livity/realestate-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

// Presence is checked by the service after trimming, so only formats are bound here.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusCreated, gin.H{"id": u.ID}, "User created successfully!", nil)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, res.Token, res.ExpiresAt)
	response.Respond(c, http.StatusOK, res.User, "signed in", gin.H{"expires_at": res.ExpiresAt})
}

// Signout always clears the cookie, even when revocation fails.
func (h *AuthHandler) Signout(c *gin.Context) {
	if err := h.Svc.Signout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
		helpers.LogWarn(h.Logger, "token revocation failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
	}
	h.Cookies.Clear(c)
	response.Respond[any](c, http.StatusOK, nil, "signed out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		fail(c, h.Logger, application.ErrUnauthorized)
		return
	}
	response.Respond(c, http.StatusOK, p, "current user", nil)
}
