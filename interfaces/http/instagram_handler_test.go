package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/dto"
	"ig-dashboard/domain/model"
	"ig-dashboard/infrastructure/clients/graph"
	httpHandler "ig-dashboard/interfaces/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testSession = &model.Session{ID: "s1", UserID: 1, InstagramID: "17841400000000000"}

type igFixture struct {
	media    *MockMediaUseCase
	accounts *MockAccountUseCase
	router   *gin.Engine
}

func newIGFixture() *igFixture {
	f := &igFixture{media: new(MockMediaUseCase), accounts: new(MockAccountUseCase)}
	h := httpHandler.NewInstagramHandler(f.media, f.accounts)
	r := gin.New()
	r.Use(withSession(testSession))
	r.GET("/api/profile", h.Profile)
	r.GET("/api/media", h.Media)
	r.GET("/api/user", h.User)
	r.POST("/api/comment", h.Comment)
	r.POST("/api/comment/reply", h.Reply)
	r.POST("/api/like", h.Like)
	r.DELETE("/api/like", h.Unlike)
	f.router = r
	return f
}

func (f *igFixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestProfile(t *testing.T) {
	f := newIGFixture()
	f.accounts.On("GetProfile", mock.Anything, testSession).Return(&model.Profile{ID: "17841400000000000", Username: "shop"}, nil).Once()
	w := f.do(http.MethodGet, "/api/profile", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"17841400000000000","username":"shop"}`, w.Body.String())

	f.accounts.On("GetProfile", mock.Anything, testSession).Return(nil, apperror.ErrNotFound).Once()
	w = f.do(http.MethodGet, "/api/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Profile not found"}`, w.Body.String())
}

func TestMedia(t *testing.T) {
	f := newIGFixture()
	f.media.On("GetMedia", mock.Anything, testSession).Return([]model.Media{{ID: "m1", MediaType: "IMAGE", MediaURL: "u", Permalink: "p", Timestamp: "t"}}, nil).Once()
	w := f.do(http.MethodGet, "/api/media", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"m1","media_type":"IMAGE","media_url":"u","permalink":"p","timestamp":"t"}]`, w.Body.String())

	f.media.On("GetMedia", mock.Anything, testSession).Return(nil, apperror.ErrNotConnected).Once()
	w = f.do(http.MethodGet, "/api/media", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Instagram account not connected properly"}`, w.Body.String())

	f.media.On("GetMedia", mock.Anything, testSession).Return(nil, errors.New(`pq: relation "instagram_media" does not exist`)).Once()
	w = f.do(http.MethodGet, "/api/media", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Failed to fetch media"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "instagram_media")
}

func TestLike_UnsupportedIsOK(t *testing.T) {
	f := newIGFixture()
	f.media.On("Like", mock.Anything, testSession, "m1").Return(&dto.ActionResult{
		Success:        true,
		APIUnsupported: true,
		Message:        "This action is not supported by Instagram's API, but we've recorded your like locally.",
		Data:           dto.UnsupportedActionData{ID: "m1"},
	}, nil)

	w := f.do(http.MethodPost, "/api/like", `{"media_id":"m1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["apiUnsupported"])
}

func TestUnlike_ProviderErrorPassesStatusThrough(t *testing.T) {
	f := newIGFixture()
	f.media.On("Unlike", mock.Anything, testSession, "m1").Return(nil, &graph.APIError{
		StatusCode: http.StatusForbidden,
		Code:       10,
		Message:    "Permission denied",
		Payload:    []byte(`{"error":{"code":10,"message":"Permission denied"}}`),
	})

	w := f.do(http.MethodDelete, "/api/like", `{"media_id":"m1"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Instagram API Error","error":"Permission denied","details":{"error":{"code":10,"message":"Permission denied"}}}`, w.Body.String())
}

func TestReply_EmptyMessageRejectedBeforeUseCase(t *testing.T) {
	f := newIGFixture()

	for _, body := range []string{`{"comment_id":"c1","message":""}`, `{"comment_id":"c1","message":"   "}`, `{"comment_id":"c1"}`} {
		w := f.do(http.MethodPost, "/api/comment/reply", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var res dto.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "message", res.Field, body)
	}
	f.media.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything)
}

func TestReply_OK(t *testing.T) {
	f := newIGFixture()
	req := dto.ReplyRequest{CommentID: "c1", Message: "Thanks"}
	f.media.On("Reply", mock.Anything, testSession, req).Return(&dto.ActionResult{Success: true, Data: json.RawMessage(`{"id":"r1"}`)}, nil)

	w := f.do(http.MethodPost, "/api/comment/reply", `{"comment_id":"c1","message":"Thanks"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":"r1"}}`, w.Body.String())
}

func TestComment_Validation(t *testing.T) {
	f := newIGFixture()

	w := f.do(http.MethodPost, "/api/comment", `{"media_id":"m1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Media ID and message are required","field":"message"}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/comment", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")

	// usecase-level validation errors keep their field
	f.media.On("PostComment", mock.Anything, testSession, dto.CommentRequest{MediaID: "m1", Message: " "}).
		Return(nil, apperror.NewValidationError("message", "Media ID and message are required"))
	w = f.do(http.MethodPost, "/api/comment", `{"media_id":"m1","message":" "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Media ID and message are required","field":"message"}`, w.Body.String())
	f.media.AssertNumberOfCalls(t, "PostComment", 1)
}

func TestLike_MissingMediaID(t *testing.T) {
	f := newIGFixture()
	w := f.do(http.MethodPost, "/api/like", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Media ID is required","field":"media_id"}`, w.Body.String())
}

func TestUser(t *testing.T) {
	f := newIGFixture()
	igID := "17841400000000000"
	f.accounts.On("GetUserDetails", mock.Anything, testSession).Return(&dto.UserDetails{
		ID:          1,
		Username:    "instagram_17841400000000000",
		InstagramID: &igID,
		MediaCount:  2,
	}, nil)

	w := f.do(http.MethodGet, "/api/user", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"instagram_17841400000000000","instagramId":"17841400000000000","profile":null,"mediaCount":2,"tokenExpiry":null}`, w.Body.String())
}
