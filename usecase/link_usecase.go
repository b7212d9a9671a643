package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"ig-dashboard/domain/apperror"
	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/clients/graph"
	"ig-dashboard/infrastructure/logger"

	"github.com/google/uuid"
)

// LinkState is a step of the account-linking flow.
type LinkState string

const (
	LinkStateAnonymousVisit          LinkState = "AnonymousVisit"
	LinkStateAuthorizationRequested  LinkState = "AuthorizationRequested"
	LinkStateCodeReceived            LinkState = "CodeReceived"
	LinkStateTokenExchanged          LinkState = "TokenExchanged"
	LinkStatePagesDiscovered         LinkState = "PagesDiscovered"
	LinkStateBusinessAccountResolved LinkState = "BusinessAccountResolved"
	LinkStateProfileFetched          LinkState = "ProfileFetched"
	LinkStateLinked                  LinkState = "Linked"
	LinkStateFailed                  LinkState = "LinkFailed"
)

// OAuthStateTTL bounds how long an issued state value can be redeemed.
const OAuthStateTTL = 10 * time.Minute

const clientSecretSuggestion = "Please check your Facebook App Secret in the .env file and make sure it's correct. You may need to regenerate it in the Facebook Developer Console."

// LinkResult is the outcome of a completed flow.
type LinkResult struct {
	Account *model.Account
	Profile *model.Profile
	Session *model.Session
	State   LinkState
}

type ILinkUseCase interface {
	// AuthorizationURL issues a one-time state value and returns the login dialog URL.
	AuthorizationURL(ctx context.Context) (string, error)
	// Link runs the callback half of the flow. Failures are *apperror.LinkError,
	// except missing configuration which is *apperror.ConfigurationError.
	Link(ctx context.Context, code, state string) (*LinkResult, error)
}

type LinkUseCase struct {
	graph    repository.IGraph
	states   repository.IStateStore
	accounts repository.IAccount
	profiles repository.IProfile
	sessions ISessionUseCase
	now      func() time.Time
}

func NewLinkUseCase(g repository.IGraph, states repository.IStateStore, accounts repository.IAccount, profiles repository.IProfile, sessions ISessionUseCase) ILinkUseCase {
	return &LinkUseCase{
		graph:    g,
		states:   states,
		accounts: accounts,
		profiles: profiles,
		sessions: sessions,
		now:      time.Now,
	}
}

func (u *LinkUseCase) AuthorizationURL(ctx context.Context) (string, error) {
	state := uuid.NewString()
	authURL, err := u.graph.AuthCodeURL(state)
	if err != nil {
		return "", err
	}
	if err := u.states.PutState(ctx, state, OAuthStateTTL); err != nil {
		return "", err
	}
	logger.GetLogger().WithField("state", LinkStateAuthorizationRequested).Info("Issued Instagram authorization URL")
	return authURL, nil
}

func (u *LinkUseCase) Link(ctx context.Context, code, state string) (*LinkResult, error) {
	res := &LinkResult{State: LinkStateCodeReceived}
	log := logger.GetLogger()

	if code == "" {
		return nil, &apperror.LinkError{Kind: apperror.LinkMissingCode, Stage: string(res.State), Message: "Authorization code missing"}
	}
	ok, err := u.states.ConsumeState(ctx, state)
	if err != nil {
		return nil, &apperror.LinkError{Kind: apperror.LinkStore, Stage: string(res.State), Message: "Authentication failed", Err: err}
	}
	if state == "" || !ok {
		return nil, &apperror.LinkError{
			Kind:       apperror.LinkInvalidState,
			Stage:      string(res.State),
			Message:    "Invalid or expired OAuth state",
			Suggestion: "Start the Instagram connection again from the dashboard.",
		}
	}

	token, err := u.graph.ExchangeCode(ctx, code)
	if err != nil {
		return nil, exchangeFailure(res.State, err)
	}
	res.State = LinkStateTokenExchanged
	accessToken := token.AccessToken

	pages, err := u.graph.ListPages(ctx, accessToken)
	if err != nil {
		return nil, providerFailure(res.State, err)
	}
	if len(pages) == 0 {
		return nil, &apperror.LinkError{
			Kind:       apperror.LinkNoLinkedPages,
			Stage:      string(res.State),
			Message:    "No Facebook Pages found",
			Details:    "You need to have at least one Facebook Page to connect to Instagram Business.",
			Suggestion: "Create a Facebook Page and connect it to an Instagram Business Account.",
		}
	}
	res.State = LinkStatePagesDiscovered

	if info, err := u.graph.GetUserInfo(ctx, accessToken); err != nil {
		log.WithField("error", err).Warn("Could not fetch Facebook user info")
	} else {
		log.WithFields(map[string]interface{}{"fb_user": info["id"], "pages": len(pages)}).Info("Facebook user resolved")
	}

	page := pages[0]
	instagramID, err := u.graph.GetPageBusinessAccount(ctx, accessToken, page.ID)
	if err != nil {
		return nil, providerFailure(res.State, err)
	}
	if instagramID == "" {
		return nil, &apperror.LinkError{
			Kind:       apperror.LinkNoBusinessAccount,
			Stage:      string(res.State),
			Message:    "No Instagram Business Account connected to this Facebook Page",
			Details:    "Your Facebook Page is not connected to an Instagram Business Account.",
			Suggestion: "Connect your Facebook Page to an Instagram Business Account in the Facebook Business Manager.",
		}
	}
	res.State = LinkStateBusinessAccountResolved

	profile, err := u.graph.GetProfile(ctx, accessToken, instagramID)
	if err != nil {
		return nil, providerFailure(res.State, err)
	}
	res.State = LinkStateProfileFetched
	res.Profile = profile

	account, err := u.accounts.UpsertInstagramAccount(ctx, instagramID, accessToken, "", u.now().Add(model.TokenLifetime))
	if err != nil {
		return nil, storeFailure(res.State, "Failed to save account", err)
	}
	res.Account = account

	// a resolved business account is a business profile by definition
	isBusiness := true
	profile.ID = instagramID
	profile.IsBusiness = &isBusiness
	if err := u.profiles.Upsert(ctx, profile); err != nil {
		return nil, storeFailure(res.State, "Failed to save profile", err)
	}

	sess, err := u.sessions.Establish(ctx, account.ID, instagramID)
	if err != nil {
		return nil, storeFailure(res.State, "Failed to establish session", err)
	}
	res.Session = sess
	res.State = LinkStateLinked

	log.WithFields(map[string]interface{}{
		"user_id":      account.ID,
		"instagram_id": instagramID,
		"page_id":      page.ID,
	}).Info("Instagram account linked")
	return res, nil
}

func storeFailure(stage LinkState, message string, err error) error {
	return &apperror.LinkError{Kind: apperror.LinkStore, Stage: string(stage), Message: message, Err: err}
}

func providerFailure(stage LinkState, err error) error {
	le := &apperror.LinkError{Kind: apperror.LinkProvider, Stage: string(stage), Message: "Authentication failed", Err: err}
	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		le.Details = apiErr.Message
		if strings.Contains(apiErr.Message, "validating client secret") {
			le.Suggestion = clientSecretSuggestion
		}
	}
	return le
}

// exchangeFailure classifies a failed code exchange. A rejected code is the
// user's to retry; a rejected client secret is the operator's to fix.
func exchangeFailure(stage LinkState, err error) error {
	var cfgErr *apperror.ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	var apiErr *graph.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
		return providerFailure(stage, err)
	}
	if strings.Contains(apiErr.Message, "validating client secret") {
		return &apperror.LinkError{
			Kind:       apperror.LinkProvider,
			Stage:      string(stage),
			Message:    "Authentication failed",
			Details:    apiErr.Message,
			Suggestion: clientSecretSuggestion,
			Err:        err,
		}
	}
	return &apperror.LinkError{
		Kind:       apperror.LinkAuthExchange,
		Stage:      string(stage),
		Message:    "Authentication failed",
		Details:    apiErr.Message,
		Suggestion: "The authorization code may have expired or already been used. Start the Instagram connection again.",
		Err:        err,
	}
}
