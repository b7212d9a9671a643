package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/dto"
	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/clients/graph"
	"ig-dashboard/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

const unsupportedActionMessage = "This action is not supported by Instagram's API, but we've recorded your %s locally."

// commentFetchLimit caps concurrent per-item comment requests on a cache miss.
const commentFetchLimit = 4

// IMediaUseCase serves the media list through the cache and performs the
// mutating actions that invalidate it.
type IMediaUseCase interface {
	GetMedia(ctx context.Context, sess *model.Session) ([]model.Media, error)
	Invalidate(ctx context.Context, instagramID string) error
	PostComment(ctx context.Context, sess *model.Session, req dto.CommentRequest) (*dto.ActionResult, error)
	Reply(ctx context.Context, sess *model.Session, req dto.ReplyRequest) (*dto.ActionResult, error)
	Like(ctx context.Context, sess *model.Session, mediaID string) (*dto.ActionResult, error)
	Unlike(ctx context.Context, sess *model.Session, mediaID string) (*dto.ActionResult, error)
}

type MediaUseCase struct {
	graph    repository.IGraph
	accounts repository.IAccount
	cache    repository.IMediaCache
}

func NewMediaUseCase(g repository.IGraph, accounts repository.IAccount, cache repository.IMediaCache) IMediaUseCase {
	return &MediaUseCase{graph: g, accounts: accounts, cache: cache}
}

// GetMedia returns the cached list when present, otherwise fetches, stores
// and returns the provider's list.
func (u *MediaUseCase) GetMedia(ctx context.Context, sess *model.Session) ([]model.Media, error) {
	acc, instagramID, err := connectedAccount(ctx, u.accounts, sess)
	if err != nil {
		return nil, err
	}

	cached, err := u.cache.List(ctx, instagramID)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	items, err := u.graph.ListMedia(ctx, acc.AccessToken, instagramID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.Media{}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(commentFetchLimit)
	for i := range items {
		m := &items[i]
		if m.MediaURL == "" {
			m.MediaURL = m.ThumbnailURL
		}
		g.Go(func() error {
			raw, err := u.graph.ListComments(gctx, acc.AccessToken, m.ID)
			if err != nil {
				logger.GetLogger().WithFields(map[string]interface{}{
					"error":    err,
					"media_id": m.ID,
				}).Warn("Failed to fetch comments; keeping media without comments")
				return nil
			}
			m.Comments = raw
			return nil
		})
	}
	_ = g.Wait()

	if err := u.cache.UpsertAll(ctx, instagramID, acc.ID, items); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":        err,
			"instagram_id": instagramID,
		}).Error("Failed to store media cache")
	}
	return items, nil
}

func (u *MediaUseCase) Invalidate(ctx context.Context, instagramID string) error {
	n, err := u.cache.DeleteByInstagramID(ctx, instagramID)
	if err != nil {
		return err
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"instagram_id": instagramID,
		"rows":         n,
	}).Debug("Media cache invalidated")
	return nil
}

func (u *MediaUseCase) PostComment(ctx context.Context, sess *model.Session, req dto.CommentRequest) (*dto.ActionResult, error) {
	if strings.TrimSpace(req.MediaID) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, apperror.NewValidationError("message", "Media ID and message are required")
	}
	return u.mutate(ctx, sess, "comment", req.MediaID, req.Message, func(token string) (json.RawMessage, error) {
		return u.graph.PostComment(ctx, token, req.MediaID, req.Message)
	})
}

func (u *MediaUseCase) Reply(ctx context.Context, sess *model.Session, req dto.ReplyRequest) (*dto.ActionResult, error) {
	if strings.TrimSpace(req.CommentID) == "" {
		return nil, apperror.NewValidationError("comment_id", "Comment ID is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperror.NewValidationError("message", "Message is required")
	}
	return u.mutate(ctx, sess, "reply", req.CommentID, req.Message, func(token string) (json.RawMessage, error) {
		return u.graph.ReplyToComment(ctx, token, req.CommentID, req.Message)
	})
}

func (u *MediaUseCase) Like(ctx context.Context, sess *model.Session, mediaID string) (*dto.ActionResult, error) {
	if strings.TrimSpace(mediaID) == "" {
		return nil, apperror.NewValidationError("media_id", "Media ID is required")
	}
	return u.mutate(ctx, sess, "like", mediaID, "", func(token string) (json.RawMessage, error) {
		return u.graph.LikeMedia(ctx, token, mediaID)
	})
}

func (u *MediaUseCase) Unlike(ctx context.Context, sess *model.Session, mediaID string) (*dto.ActionResult, error) {
	if strings.TrimSpace(mediaID) == "" {
		return nil, apperror.NewValidationError("media_id", "Media ID is required")
	}
	return u.mutate(ctx, sess, "unlike", mediaID, "", func(token string) (json.RawMessage, error) {
		return u.graph.UnlikeMedia(ctx, token, mediaID)
	})
}

// mutate runs one provider action. Success and the unsupported-operation
// soft success both clear the account's media cache.
func (u *MediaUseCase) mutate(ctx context.Context, sess *model.Session, action, targetID, message string, call func(token string) (json.RawMessage, error)) (*dto.ActionResult, error) {
	acc, instagramID, err := connectedAccount(ctx, u.accounts, sess)
	if err != nil {
		return nil, err
	}

	raw, err := call(acc.AccessToken)
	if err != nil {
		if !graph.IsUnsupported(err) {
			return nil, err
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"action":    action,
			"target_id": targetID,
		}).Info("Instagram API does not support action; reporting soft success")
		u.invalidateQuietly(ctx, instagramID)
		return &dto.ActionResult{
			Success:        true,
			APIUnsupported: true,
			Message:        fmt.Sprintf(unsupportedActionMessage, action),
			Data:           dto.UnsupportedActionData{ID: targetID, Message: message},
		}, nil
	}

	u.invalidateQuietly(ctx, instagramID)
	return &dto.ActionResult{Success: true, Data: raw}, nil
}

func (u *MediaUseCase) invalidateQuietly(ctx context.Context, instagramID string) {
	if err := u.Invalidate(ctx, instagramID); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":        err,
			"instagram_id": instagramID,
		}).Error("Failed to invalidate media cache")
	}
}

// connectedAccount resolves the session's account and the Instagram id used
// as the cache key. Accounts without a stored token are not connected.
func connectedAccount(ctx context.Context, accounts repository.IAccount, sess *model.Session) (*model.Account, string, error) {
	if sess == nil {
		return nil, "", apperror.ErrNotAuthenticated
	}
	acc, err := accounts.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, "", err
	}
	if !acc.HasToken() {
		return nil, "", apperror.ErrNotConnected
	}
	instagramID := sess.InstagramID
	if acc.InstagramID != nil && *acc.InstagramID != "" {
		instagramID = *acc.InstagramID
	}
	if instagramID == "" {
		return nil, "", apperror.ErrNotConnected
	}
	return acc, instagramID, nil
}
