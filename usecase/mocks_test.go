package usecase_test

import (
	"context"
	"encoding/json"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

// Mock implementations
type MockGraph struct {
	mock.Mock
}

func (m *MockGraph) AuthCodeURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockGraph) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	tok, _ := args.Get(0).(*oauth2.Token)
	return tok, args.Error(1)
}

func (m *MockGraph) ListPages(ctx context.Context, accessToken string) ([]repository.Page, error) {
	args := m.Called(ctx, accessToken)
	pages, _ := args.Get(0).([]repository.Page)
	return pages, args.Error(1)
}

func (m *MockGraph) GetUserInfo(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	args := m.Called(ctx, accessToken)
	info, _ := args.Get(0).(map[string]interface{})
	return info, args.Error(1)
}

func (m *MockGraph) GetPageBusinessAccount(ctx context.Context, accessToken, pageID string) (string, error) {
	args := m.Called(ctx, accessToken, pageID)
	return args.String(0), args.Error(1)
}

func (m *MockGraph) GetProfile(ctx context.Context, accessToken, instagramID string) (*model.Profile, error) {
	args := m.Called(ctx, accessToken, instagramID)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *MockGraph) ListMedia(ctx context.Context, accessToken, instagramID string) ([]model.Media, error) {
	args := m.Called(ctx, accessToken, instagramID)
	items, _ := args.Get(0).([]model.Media)
	return items, args.Error(1)
}

func (m *MockGraph) ListComments(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error) {
	args := m.Called(ctx, accessToken, mediaID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockGraph) PostComment(ctx context.Context, accessToken, mediaID, message string) (json.RawMessage, error) {
	args := m.Called(ctx, accessToken, mediaID, message)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockGraph) ReplyToComment(ctx context.Context, accessToken, commentID, message string) (json.RawMessage, error) {
	args := m.Called(ctx, accessToken, commentID, message)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockGraph) LikeMedia(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error) {
	args := m.Called(ctx, accessToken, mediaID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockGraph) UnlikeMedia(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error) {
	args := m.Called(ctx, accessToken, mediaID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*model.Account)
	return acc, args.Error(1)
}

func (m *MockAccountRepository) UpsertInstagramAccount(ctx context.Context, instagramID, accessToken, refreshToken string, expiry time.Time) (*model.Account, error) {
	args := m.Called(ctx, instagramID, accessToken, refreshToken, expiry)
	acc, _ := args.Get(0).(*model.Account)
	return acc, args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Get(ctx context.Context, instagramID string) (*model.Profile, error) {
	args := m.Called(ctx, instagramID)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

type MockMediaCache struct {
	mock.Mock
}

func (m *MockMediaCache) List(ctx context.Context, instagramID string) ([]model.Media, error) {
	args := m.Called(ctx, instagramID)
	items, _ := args.Get(0).([]model.Media)
	return items, args.Error(1)
}

func (m *MockMediaCache) UpsertAll(ctx context.Context, instagramID string, userID int64, items []model.Media) error {
	args := m.Called(ctx, instagramID, userID, items)
	return args.Error(0)
}

func (m *MockMediaCache) DeleteByInstagramID(ctx context.Context, instagramID string) (int64, error) {
	args := m.Called(ctx, instagramID)
	return int64(args.Int(0)), args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, session *model.Session, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func connectedAccount(id int64, instagramID string) *model.Account {
	return &model.Account{
		ID:          id,
		Username:    model.UsernameFor(instagramID),
		InstagramID: strPtr(instagramID),
		AccessToken: "tok123",
	}
}
