package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
)

// Scopes requested on the Facebook login dialog.
var Scopes = []string{
	"instagram_basic",
	"instagram_manage_comments",
	"pages_show_list",
	"pages_read_engagement",
	"business_management",
	"instagram_manage_insights",
	"instagram_content_publish",
}

const (
	mediaFields   = "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp,like_count,comments_count"
	commentFields = "id,text,username,timestamp"
	profileFields = "id,username,name,profile_picture_url,biography,website,followers_count,follows_count,media_count"
	pageFields    = "instagram_business_account,name,id"
	userFields    = "id,name,email"

	// maxMediaPages bounds ListMedia when the provider keeps returning cursors.
	maxMediaPages = 50
)

// Config represents Graph API client configuration
type Config struct {
	AppID       string
	AppSecret   string
	RedirectURI string
	// BaseURL is the Graph host, e.g. https://graph.facebook.com.
	BaseURL string
	// DialogURL is the login dialog host, e.g. https://www.facebook.com.
	DialogURL string
	Version   string
}

// Client talks to the Facebook Graph API on behalf of a user access token.
type Client struct {
	cfg         Config
	httpClient  *http.Client
	oauthConfig *oauth2.Config
}

var _ repository.IGraph = (*Client)(nil)

// NewClient creates a Graph API client. A nil httpClient uses http.DefaultClient.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.DialogURL = strings.TrimRight(cfg.DialogURL, "/")
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.AppID,
			ClientSecret: cfg.AppSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL: fmt.Sprintf("%s/%s/dialog/oauth", cfg.DialogURL, cfg.Version),
			},
		},
	}
}

// AuthCodeURL builds the login dialog URL. It makes no network call.
func (c *Client) AuthCodeURL(state string) (string, error) {
	var missing []string
	if c.cfg.AppID == "" {
		missing = append(missing, "FACEBOOK_APP_ID")
	}
	if c.cfg.RedirectURI == "" {
		missing = append(missing, "REDIRECT_URI")
	}
	if len(missing) > 0 {
		return "", &apperror.ConfigurationError{Missing: missing}
	}
	return c.oauthConfig.AuthCodeURL(state), nil
}

// ExchangeCode trades an authorization code for a user access token.
// Codes are single-use, so the call is never retried. Provider errors surface
// as *APIError like every other Graph call.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if c.cfg.AppSecret == "" {
		return nil, &apperror.ConfigurationError{Missing: []string{"FACEBOOK_APP_SECRET"}}
	}
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	params := exchangeParams{
		ClientID:     c.cfg.AppID,
		ClientSecret: c.cfg.AppSecret,
		RedirectURI:  c.cfg.RedirectURI,
		Code:         code,
	}
	if _, err := c.do(ctx, http.MethodGet, "oauth/access_token", params, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("graph token exchange returned no access_token")
	}
	tok := &oauth2.Token{AccessToken: out.AccessToken, TokenType: out.TokenType}
	if out.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	return tok, nil
}

type exchangeParams struct {
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
	RedirectURI  string `url:"redirect_uri"`
	Code         string `url:"code"`
}

type tokenParams struct {
	Fields      string `url:"fields,omitempty"`
	AccessToken string `url:"access_token"`
}

type mediaParams struct {
	Fields      string `url:"fields"`
	After       string `url:"after,omitempty"`
	AccessToken string `url:"access_token"`
}

type mediaPage struct {
	Data   []model.Media `json:"data"`
	Paging struct {
		Cursors struct {
			After string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

type messageParams struct {
	Message     string `url:"message"`
	AccessToken string `url:"access_token"`
}

// ListPages returns the Facebook pages the token can manage.
func (c *Client) ListPages(ctx context.Context, accessToken string) ([]repository.Page, error) {
	var out struct {
		Data []repository.Page `json:"data"`
	}
	if _, err := c.do(ctx, http.MethodGet, "me/accounts", tokenParams{AccessToken: accessToken}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetUserInfo returns basic fields of the Facebook user behind the token.
func (c *Client) GetUserInfo(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if _, err := c.do(ctx, http.MethodGet, "me", tokenParams{Fields: userFields, AccessToken: accessToken}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPageBusinessAccount returns the Instagram business account linked to pageID.
func (c *Client) GetPageBusinessAccount(ctx context.Context, accessToken, pageID string) (string, error) {
	var out struct {
		ID                       string `json:"id"`
		Name                     string `json:"name"`
		InstagramBusinessAccount *struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if _, err := c.do(ctx, http.MethodGet, url.PathEscape(pageID), tokenParams{Fields: pageFields, AccessToken: accessToken}, &out); err != nil {
		return "", err
	}
	if out.InstagramBusinessAccount == nil {
		return "", nil
	}
	return out.InstagramBusinessAccount.ID, nil
}

type profileResponse struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url"`
	Biography         string `json:"biography"`
	Website           string `json:"website"`
	FollowersCount    *int   `json:"followers_count"`
	FollowsCount      *int   `json:"follows_count"`
	MediaCount        *int   `json:"media_count"`
}

// GetProfile fetches the business account profile fields.
func (c *Client) GetProfile(ctx context.Context, accessToken, instagramID string) (*model.Profile, error) {
	var out profileResponse
	if _, err := c.do(ctx, http.MethodGet, url.PathEscape(instagramID), tokenParams{Fields: profileFields, AccessToken: accessToken}, &out); err != nil {
		return nil, err
	}
	id := out.ID
	if id == "" {
		id = instagramID
	}
	return &model.Profile{
		ID:                id,
		Username:          out.Username,
		Name:              out.Name,
		ProfilePictureURL: out.ProfilePictureURL,
		Biography:         out.Biography,
		Website:           out.Website,
		MediaCount:        out.MediaCount,
		FollowersCount:    out.FollowersCount,
		FollowingCount:    out.FollowsCount,
	}, nil
}

// ListMedia returns the account's media without comments, following the
// "after" cursor until the provider stops offering a next page.
func (c *Client) ListMedia(ctx context.Context, accessToken, instagramID string) ([]model.Media, error) {
	path := url.PathEscape(instagramID) + "/media"
	params := mediaParams{Fields: mediaFields, AccessToken: accessToken}
	items := make([]model.Media, 0)
	for page := 0; page < maxMediaPages; page++ {
		var out mediaPage
		if _, err := c.do(ctx, http.MethodGet, path, params, &out); err != nil {
			return nil, err
		}
		items = append(items, out.Data...)
		if out.Paging.Next == "" || out.Paging.Cursors.After == "" {
			break
		}
		params.After = out.Paging.Cursors.After
	}
	return items, nil
}

// ListComments returns the raw comment listing of a media item.
func (c *Client) ListComments(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error) {
	path := url.PathEscape(mediaID) + "/comments"
	return c.do(ctx, http.MethodGet, path, tokenParams{Fields: commentFields, AccessToken: accessToken}, nil)
}

func (c *Client) PostComment(ctx context.Context, accessToken, mediaID, message string) (json.RawMessage, error) {
	path := url.PathEscape(mediaID) + "/comments"
	return c.do(ctx, http.MethodPost, path, messageParams{Message: message, AccessToken: accessToken}, nil)
}

func (c *Client) ReplyToComment(ctx context.Context, accessToken, commentID, message string) (json.RawMessage, error) {
	path := url.PathEscape(commentID) + "/replies"
	return c.do(ctx, http.MethodPost, path, messageParams{Message: message, AccessToken: accessToken}, nil)
}

func (c *Client) LikeMedia(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error) {
	path := url.PathEscape(mediaID) + "/likes"
	return c.do(ctx, http.MethodPost, path, tokenParams{AccessToken: accessToken}, nil)
}

func (c *Client) UnlikeMedia(ctx context.Context, accessToken, mediaID string) (json.RawMessage, error) {
	path := url.PathEscape(mediaID) + "/likes"
	return c.do(ctx, http.MethodDelete, path, tokenParams{AccessToken: accessToken}, nil)
}

// VerifyCredentials looks the app up with an app access token, which fails
// when the app id or secret is wrong.
func (c *Client) VerifyCredentials(ctx context.Context) (map[string]interface{}, error) {
	if c.cfg.AppID == "" || c.cfg.AppSecret == "" {
		return nil, &apperror.ConfigurationError{Missing: []string{"FACEBOOK_APP_ID", "FACEBOOK_APP_SECRET"}}
	}
	out := map[string]interface{}{}
	appToken := c.cfg.AppID + "|" + c.cfg.AppSecret
	if _, err := c.do(ctx, http.MethodGet, url.PathEscape(c.cfg.AppID), tokenParams{AccessToken: appToken}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues one Graph request. Parameters travel in the query string, as the
// Graph API accepts for every method. out, when non-nil, receives the decoded body.
func (c *Client) do(ctx context.Context, method, path string, params interface{}, out interface{}) (json.RawMessage, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("encode graph params: %w", err)
	}
	u := fmt.Sprintf("%s/%s/%s?%s", c.cfg.BaseURL, c.cfg.Version, path, values.Encode())
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read graph response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("decode graph response: %w", err)
		}
	}
	if !json.Valid(body) {
		raw, _ := json.Marshal(string(body))
		return raw, nil
	}
	return json.RawMessage(body), nil
}
