package usecase

import (
	"context"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/dto"
	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
)

type IAccountUseCase interface {
	GetProfile(ctx context.Context, sess *model.Session) (*model.Profile, error)
	GetUserDetails(ctx context.Context, sess *model.Session) (*dto.UserDetails, error)
}

type AccountUseCase struct {
	accounts repository.IAccount
	profiles repository.IProfile
	cache    repository.IMediaCache
}

func NewAccountUseCase(accounts repository.IAccount, profiles repository.IProfile, cache repository.IMediaCache) IAccountUseCase {
	return &AccountUseCase{accounts: accounts, profiles: profiles, cache: cache}
}

// GetProfile returns the stored profile snapshot for the session's Instagram account.
func (u *AccountUseCase) GetProfile(ctx context.Context, sess *model.Session) (*model.Profile, error) {
	if sess == nil {
		return nil, apperror.ErrNotAuthenticated
	}
	if sess.InstagramID == "" {
		return nil, apperror.ErrNotConnected
	}
	profile, err := u.profiles.Get(ctx, sess.InstagramID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.ErrNotFound
	}
	return profile, nil
}

// GetUserDetails summarizes the local account, its profile and the number of cached media items.
func (u *AccountUseCase) GetUserDetails(ctx context.Context, sess *model.Session) (*dto.UserDetails, error) {
	if sess == nil {
		return nil, apperror.ErrNotAuthenticated
	}
	acc, err := u.accounts.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperror.ErrNotFound
	}

	details := &dto.UserDetails{
		ID:          acc.ID,
		Username:    acc.Username,
		TokenExpiry: acc.TokenExpiry,
	}
	if acc.InstagramID == nil || *acc.InstagramID == "" {
		return details, nil
	}
	details.InstagramID = acc.InstagramID

	if details.Profile, err = u.profiles.Get(ctx, *acc.InstagramID); err != nil {
		return nil, err
	}
	media, err := u.cache.List(ctx, *acc.InstagramID)
	if err != nil {
		return nil, err
	}
	details.MediaCount = len(media)
	return details, nil
}
