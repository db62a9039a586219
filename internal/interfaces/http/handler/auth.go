package handler

import (
	"time"

	"github.com/atedres/boldnet-sub000/internal/application/identity"
	"github.com/atedres/boldnet-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin sign-up, sign-in and sign-out
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignUp creates an admin account when the invite code matches
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req identity.SignUpRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// SignIn authenticates an admin and issues an access token
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req identity.SignInRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// SignOut revokes the token used for this request
func (h *AuthHandler) SignOut(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	in := identity.SignOutInput{TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		in.ExpiresAt = claims.ExpiresAt.Time
	} else {
		in.ExpiresAt = time.Now().Add(time.Hour)
	}

	if err := h.authService.SignOut(c.Request.Context(), in); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Me returns the signed-in admin
func (h *AuthHandler) Me(c *gin.Context) {
	editorID, err := getEditorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), editorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
