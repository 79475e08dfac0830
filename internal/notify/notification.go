// Package notify implements the single-slot transient status message shown
// to a session. A new message always replaces the current one and restarts
// its expiry window.
package notify

import "time"

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 3 * time.Second

// Status messages emitted by the session operations.
const (
	MsgSearching         = "Searching..."
	MsgResults           = "Here are the results."
	MsgNoResults         = "No results found."
	MsgFetchError        = "Error fetching data."
	MsgIngredientsAdded  = "Ingredients added to shopping list."
	MsgIngredientRemoved = "Ingredient removed from shopping list."
)

// Notification is the current message and when it stops being visible. The
// zero value is the idle state.
type Notification struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Show returns the notification that results from displaying msg at now.
func Show(now time.Time, msg string, ttl time.Duration) Notification {
	return Notification{Message: msg, ExpiresAt: now.Add(ttl)}
}

// Visible returns the message if it has not expired at now.
func (n Notification) Visible(now time.Time) (string, bool) {
	if n.Message == "" || !now.Before(n.ExpiresAt) {
		return "", false
	}
	return n.Message, true
}

// IsZero reports whether n is the idle state.
func (n Notification) IsZero() bool {
	return n.Message == "" && n.ExpiresAt.IsZero()
}
