package http

import (
	"errors"
	"net/http"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/dto"
	"ig-dashboard/infrastructure/logger"
	"ig-dashboard/interfaces/middleware"
	"ig-dashboard/usecase"

	"github.com/gin-gonic/gin"
)

type IAuthHandler interface {
	GetAuthURL(c *gin.Context)
	Callback(c *gin.Context)
	Status(c *gin.Context)
	Logout(c *gin.Context)
}

type AuthHandler struct {
	link     usecase.ILinkUseCase
	sessions usecase.ISessionUseCase
	codec    *middleware.CookieCodec
}

func NewAuthHandler(link usecase.ILinkUseCase, sessions usecase.ISessionUseCase, codec *middleware.CookieCodec) IAuthHandler {
	return &AuthHandler{link: link, sessions: sessions, codec: codec}
}

func (h *AuthHandler) GetAuthURL(c *gin.Context) {
	authURL, err := h.link.AuthorizationURL(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build authorization URL")
		return
	}
	c.JSON(http.StatusOK, dto.AuthURLResponse{AuthURL: authURL})
}

// Callback completes the OAuth round trip and redirects home with a session cookie.
func (h *AuthHandler) Callback(c *gin.Context) {
	if denied := c.Query("error"); denied != "" {
		details := c.Query("error_description")
		if details == "" {
			details = c.Query("error_reason")
		}
		logger.GetLogger().WithFields(map[string]interface{}{"error": denied, "details": details}).Warn("Instagram authorization denied")
		c.JSON(http.StatusBadRequest, dto.LinkErrorResponse{
			Message: "Authorization was not granted",
			Details: details,
			Error:   string(apperror.LinkProviderDenied),
		})
		return
	}

	res, err := h.link.Link(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		_ = c.Error(err)
		var le *apperror.LinkError
		if errors.As(err, &le) {
			c.JSON(linkErrorStatus(le), linkErrorResponse(le))
			return
		}
		respondError(c, err, "Authentication failed")
		return
	}

	if err := h.codec.SetCookie(c, res.Session); err != nil {
		respondError(c, err, "Failed to establish session")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Status never requires a session.
func (h *AuthHandler) Status(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		c.JSON(http.StatusOK, dto.AuthStatus{})
		return
	}
	userID := sess.UserID
	status := dto.AuthStatus{Authenticated: true, UserID: &userID}
	if sess.InstagramID != "" {
		igID := sess.InstagramID
		status.InstagramID = &igID
	}
	c.JSON(http.StatusOK, status)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Destroy(c.Request.Context(), sess.ID); err != nil {
			respondError(c, err, "Failed to logout")
			return
		}
	}
	h.codec.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
