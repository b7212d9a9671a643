package http_test

import (
	"context"

	"ig-dashboard/domain/dto"
	"ig-dashboard/domain/model"
	"ig-dashboard/usecase"

	"github.com/stretchr/testify/mock"
)

type MockLinkUseCase struct {
	mock.Mock
}

func (m *MockLinkUseCase) AuthorizationURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockLinkUseCase) Link(ctx context.Context, code, state string) (*usecase.LinkResult, error) {
	args := m.Called(ctx, code, state)
	res, _ := args.Get(0).(*usecase.LinkResult)
	return res, args.Error(1)
}

type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Establish(ctx context.Context, userID int64, instagramID string) (*model.Session, error) {
	args := m.Called(ctx, userID, instagramID)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *MockSessionUseCase) Get(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *MockSessionUseCase) Destroy(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockMediaUseCase struct {
	mock.Mock
}

func (m *MockMediaUseCase) GetMedia(ctx context.Context, sess *model.Session) ([]model.Media, error) {
	args := m.Called(ctx, sess)
	items, _ := args.Get(0).([]model.Media)
	return items, args.Error(1)
}

func (m *MockMediaUseCase) Invalidate(ctx context.Context, instagramID string) error {
	return m.Called(ctx, instagramID).Error(0)
}

func (m *MockMediaUseCase) PostComment(ctx context.Context, sess *model.Session, req dto.CommentRequest) (*dto.ActionResult, error) {
	args := m.Called(ctx, sess, req)
	res, _ := args.Get(0).(*dto.ActionResult)
	return res, args.Error(1)
}

func (m *MockMediaUseCase) Reply(ctx context.Context, sess *model.Session, req dto.ReplyRequest) (*dto.ActionResult, error) {
	args := m.Called(ctx, sess, req)
	res, _ := args.Get(0).(*dto.ActionResult)
	return res, args.Error(1)
}

func (m *MockMediaUseCase) Like(ctx context.Context, sess *model.Session, mediaID string) (*dto.ActionResult, error) {
	args := m.Called(ctx, sess, mediaID)
	res, _ := args.Get(0).(*dto.ActionResult)
	return res, args.Error(1)
}

func (m *MockMediaUseCase) Unlike(ctx context.Context, sess *model.Session, mediaID string) (*dto.ActionResult, error) {
	args := m.Called(ctx, sess, mediaID)
	res, _ := args.Get(0).(*dto.ActionResult)
	return res, args.Error(1)
}

type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) GetProfile(ctx context.Context, sess *model.Session) (*model.Profile, error) {
	args := m.Called(ctx, sess)
	p, _ := args.Get(0).(*model.Profile)
	return p, args.Error(1)
}

func (m *MockAccountUseCase) GetUserDetails(ctx context.Context, sess *model.Session) (*dto.UserDetails, error) {
	args := m.Called(ctx, sess)
	d, _ := args.Get(0).(*dto.UserDetails)
	return d, args.Error(1)
}
