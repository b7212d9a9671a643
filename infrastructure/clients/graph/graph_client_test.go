package graph_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/infrastructure/clients/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *graph.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return graph.NewClient(graph.Config{
		AppID:       "app-1",
		AppSecret:   "secret-1",
		RedirectURI: "http://localhost:5000/auth/instagram/callback",
		BaseURL:     srv.URL,
		DialogURL:   "https://www.facebook.com",
		Version:     "v17.0",
	}, srv.Client())
}

func TestAuthCodeURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected network call to %s", r.URL.Path)
	})

	raw, err := c.AuthCodeURL("state-abc")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.facebook.com", u.Host)
	assert.Equal(t, "/v17.0/dialog/oauth", u.Path)
	q := u.Query()
	assert.Equal(t, "app-1", q.Get("client_id"))
	assert.Equal(t, "http://localhost:5000/auth/instagram/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-abc", q.Get("state"))
	for _, s := range graph.Scopes {
		assert.Contains(t, q.Get("scope"), s)
	}
}

func TestAuthCodeURL_MissingConfiguration(t *testing.T) {
	c := graph.NewClient(graph.Config{Version: "v17.0"}, nil)
	_, err := c.AuthCodeURL("s")
	var cfgErr *apperror.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"FACEBOOK_APP_ID", "REDIRECT_URI"}, cfgErr.Missing)
}

func TestExchangeCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17.0/oauth/access_token", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "code-1", q.Get("code"))
		assert.Equal(t, "app-1", q.Get("client_id"))
		assert.Equal(t, "secret-1", q.Get("client_secret"))
		assert.Equal(t, "http://localhost:5000/auth/instagram/callback", q.Get("redirect_uri"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok123","token_type":"bearer","expires_in":5183944}`))
	})

	tok, err := c.ExchangeCode(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok.AccessToken)
	assert.False(t, tok.Expiry.IsZero())
}

func TestExchangeCode_ProviderRejects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Error validating client secret.","type":"OAuthException","code":1}}`))
	})

	_, err := c.ExchangeCode(context.Background(), "code-1")
	var apiErr *graph.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "validating client secret")
}

func TestListPagesAndBusinessAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok123", r.URL.Query().Get("access_token"))
		switch r.URL.Path {
		case "/v17.0/me/accounts":
			_, _ = w.Write([]byte(`{"data":[{"id":"p1","name":"Page One","access_token":"ptok"},{"id":"p2","name":"Page Two"}]}`))
		case "/v17.0/p1":
			assert.Equal(t, "instagram_business_account,name,id", r.URL.Query().Get("fields"))
			_, _ = w.Write([]byte(`{"id":"p1","name":"Page One","instagram_business_account":{"id":"17841400000000000"}}`))
		case "/v17.0/p2":
			_, _ = w.Write([]byte(`{"id":"p2","name":"Page Two"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	pages, err := c.ListPages(ctx, "tok123")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "p1", pages[0].ID)

	igID, err := c.GetPageBusinessAccount(ctx, "tok123", "p1")
	require.NoError(t, err)
	assert.Equal(t, "17841400000000000", igID)

	igID, err = c.GetPageBusinessAccount(ctx, "tok123", "p2")
	require.NoError(t, err)
	assert.Empty(t, igID)
}

func TestGetProfile_MapsFollowsCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17.0/17841400000000000", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("fields"), "follows_count")
		_, _ = w.Write([]byte(`{"id":"17841400000000000","username":"shop","followers_count":10,"follows_count":3,"media_count":7}`))
	})

	p, err := c.GetProfile(context.Background(), "tok123", "17841400000000000")
	require.NoError(t, err)
	assert.Equal(t, "shop", p.Username)
	require.NotNil(t, p.FollowingCount)
	assert.Equal(t, 3, *p.FollowingCount)
	require.NotNil(t, p.FollowersCount)
	assert.Equal(t, 10, *p.FollowersCount)
	assert.Equal(t, 7, *p.MediaCount)
}

func TestListMediaAndComments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v17.0/ig1/media":
			assert.Contains(t, r.URL.Query().Get("fields"), "comments_count")
			_, _ = w.Write([]byte(`{"data":[{"id":"m1","media_type":"IMAGE","media_url":"https://cdn/x.jpg","like_count":2,"comments_count":1}]}`))
		case "/v17.0/m1/comments":
			assert.Equal(t, "id,text,username,timestamp", r.URL.Query().Get("fields"))
			_, _ = w.Write([]byte(`{"data":[{"id":"c1","text":"hi","username":"bob"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	media, err := c.ListMedia(ctx, "tok", "ig1")
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, "m1", media[0].ID)
	require.NotNil(t, media[0].LikeCount)
	assert.Equal(t, 2, *media[0].LikeCount)

	raw, err := c.ListComments(ctx, "tok", "m1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"id":"c1","text":"hi","username":"bob"}]}`, string(raw))
}

func TestListMedia_FollowsPaging(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v17.0/ig1/media", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		switch r.URL.Query().Get("after") {
		case "":
			_, _ = w.Write([]byte(`{"data":[{"id":"m1"},{"id":"m2"}],"paging":{"cursors":{"after":"c2"},"next":"https://graph.facebook.com/v17.0/ig1/media?after=c2"}}`))
		case "c2":
			_, _ = w.Write([]byte(`{"data":[{"id":"m3"}],"paging":{"cursors":{"before":"c2","after":"c3"}}}`))
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("after"))
		}
	})

	media, err := c.ListMedia(context.Background(), "tok", "ig1")
	require.NoError(t, err)
	require.Len(t, media, 3)
	assert.Equal(t, "m3", media[2].ID)
	assert.Equal(t, 2, calls)
}

func TestListMedia_PageErrorFailsWholeList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("after") == "" {
			_, _ = w.Write([]byte(`{"data":[{"id":"m1"}],"paging":{"cursors":{"after":"c2"},"next":"next-page"}}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid cursor","code":100}}`))
	})

	media, err := c.ListMedia(context.Background(), "tok", "ig1")
	require.Error(t, err)
	assert.Nil(t, media)
	var apiErr *graph.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestMutations_MethodsAndParams(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path+" "+r.URL.Query().Get("message"))
		_, _ = w.Write([]byte(`{"id":"new-1"}`))
	})
	ctx := context.Background()

	_, err := c.PostComment(ctx, "tok", "m1", "Nice shot")
	require.NoError(t, err)
	_, err = c.ReplyToComment(ctx, "tok", "c1", "Thanks")
	require.NoError(t, err)
	_, err = c.LikeMedia(ctx, "tok", "m1")
	require.NoError(t, err)
	_, err = c.UnlikeMedia(ctx, "tok", "m1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /v17.0/m1/comments Nice shot",
		"POST /v17.0/c1/replies Thanks",
		"POST /v17.0/m1/likes ",
		"DELETE /v17.0/m1/likes ",
	}, calls)
}

func TestAPIError_Unsupported(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Unsupported post request.","type":"GraphMethodException","code":100,"error_subcode":33}}`))
	})

	_, err := c.LikeMedia(context.Background(), "tok", "m1")
	require.Error(t, err)
	assert.True(t, graph.IsUnsupported(err))

	var apiErr *graph.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 33, apiErr.Subcode)
	assert.Equal(t, "GraphMethodException", apiErr.Type)
	assert.Contains(t, string(apiErr.Payload), "Unsupported post request.")
}

func TestAPIError_NonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.ListPages(context.Background(), "tok")
	var apiErr *graph.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.False(t, apiErr.Unsupported())
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, `"upstream down"`, string(apiErr.Payload))
	assert.True(t, strings.HasPrefix(apiErr.Message, "request failed"))
}

func TestVerifyCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17.0/app-1", r.URL.Path)
		assert.Equal(t, "app-1|secret-1", r.URL.Query().Get("access_token"))
		_, _ = w.Write([]byte(`{"id":"app-1","name":"Dashboard"}`))
	})

	info, err := c.VerifyCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", info["name"])
}
