package http

import (
	"errors"
	"net/http"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/dto"
	"ig-dashboard/interfaces/middleware"
	"ig-dashboard/usecase"

	"github.com/gin-gonic/gin"
)

type IInstagramHandler interface {
	Profile(c *gin.Context)
	Media(c *gin.Context)
	Comment(c *gin.Context)
	Reply(c *gin.Context)
	Like(c *gin.Context)
	Unlike(c *gin.Context)
	User(c *gin.Context)
}

type InstagramHandler struct {
	media    usecase.IMediaUseCase
	accounts usecase.IAccountUseCase
}

func NewInstagramHandler(media usecase.IMediaUseCase, accounts usecase.IAccountUseCase) IInstagramHandler {
	RegisterValidators()
	return &InstagramHandler{media: media, accounts: accounts}
}

func (h *InstagramHandler) Profile(c *gin.Context) {
	profile, err := h.accounts.GetProfile(c.Request.Context(), middleware.CurrentSession(c))
	if errors.Is(err, apperror.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Profile not found"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *InstagramHandler) Media(c *gin.Context) {
	items, err := h.media.GetMedia(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, err, "Failed to fetch media")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstagramHandler) Comment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationResponse(err, "Media ID and message are required"))
		return
	}
	res, err := h.media.PostComment(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		respondError(c, err, "Failed to post comment")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InstagramHandler) Reply(c *gin.Context) {
	var req dto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationResponse(err))
		return
	}
	res, err := h.media.Reply(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		respondError(c, err, "Failed to post comment reply")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InstagramHandler) Like(c *gin.Context) {
	var req dto.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationResponse(err))
		return
	}
	res, err := h.media.Like(c.Request.Context(), middleware.CurrentSession(c), req.MediaID)
	if err != nil {
		respondError(c, err, "Failed to like media")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InstagramHandler) Unlike(c *gin.Context) {
	var req dto.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationResponse(err))
		return
	}
	res, err := h.media.Unlike(c.Request.Context(), middleware.CurrentSession(c), req.MediaID)
	if err != nil {
		respondError(c, err, "Failed to unlike media")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InstagramHandler) User(c *gin.Context) {
	details, err := h.accounts.GetUserDetails(c.Request.Context(), middleware.CurrentSession(c))
	if errors.Is(err, apperror.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "User not found"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to fetch user details")
		return
	}
	c.JSON(http.StatusOK, details)
}
