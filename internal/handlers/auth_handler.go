package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/internal/utils"
)

type AuthHandler struct {
	Service *service.UserService
}

func NewAuthHandler(s *service.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	resp, err := h.Service.Signup(c.Request.Context(), req)
	if err != nil {
		utils.FromError(c, "Signup failed", err)
		return
	}
	utils.CreatedResponse(c, "Account created", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		// Wrong email and wrong password are indistinguishable on purpose.
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	utils.SuccessResponse(c, "Login successful", resp)
}

// Me returns the account of the authenticated user. Requires
// AuthMiddleware to have set userId on the context.
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.Service.GetProfile(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		utils.FromError(c, "Failed to load profile", err)
		return
	}
	utils.SuccessResponse(c, "Profile retrieved", profile)
}

// AuthMiddleware rejects requests without a valid bearer token. Not
// applied to the GitHub analysis routes, which are deliberately open.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.GetUserIDFromToken(c)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or missing token")
			c.Abort()
			return
		}
		c.Set("userId", userID)
		c.Next()
	}
}
