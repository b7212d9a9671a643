package apperror

import "fmt"

// LinkErrorKind classifies why the account-linking flow stopped.
type LinkErrorKind string

const (
	LinkInvalidState      LinkErrorKind = "invalid_state"
	LinkMissingCode       LinkErrorKind = "missing_code"
	LinkProviderDenied    LinkErrorKind = "provider_denied"
	LinkAuthExchange      LinkErrorKind = "auth_exchange"
	LinkNoLinkedPages     LinkErrorKind = "no_linked_pages"
	LinkNoBusinessAccount LinkErrorKind = "no_business_account"
	LinkProvider          LinkErrorKind = "provider"
	LinkStore             LinkErrorKind = "store"
)

// LinkError is the terminal LinkFailed state of the linking flow. Stage names
// the state the flow was in when it failed.
type LinkError struct {
	Kind       LinkErrorKind
	Stage      string
	Message    string
	Details    string
	Suggestion string
	Err        error
}

func (e *LinkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("link failed at %s (%s): %s: %v", e.Stage, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("link failed at %s (%s): %s", e.Stage, e.Kind, e.Message)
}

func (e *LinkError) Unwrap() error { return e.Err }

// UserFacing reports whether the user can fix the failure on the provider side,
// as opposed to a provider outage or a store failure.
func (e *LinkError) UserFacing() bool {
	switch e.Kind {
	case LinkInvalidState, LinkMissingCode, LinkProviderDenied, LinkAuthExchange, LinkNoLinkedPages, LinkNoBusinessAccount:
		return true
	}
	return false
}
