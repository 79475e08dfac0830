package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/windoze95/mixlist/internal/app"
	"github.com/windoze95/mixlist/internal/cocktaildb"
	"github.com/windoze95/mixlist/internal/config"
	"github.com/windoze95/mixlist/internal/logger"
	"github.com/windoze95/mixlist/internal/models"
	"github.com/windoze95/mixlist/internal/notify"
	"github.com/windoze95/mixlist/internal/printout"
	"github.com/windoze95/mixlist/internal/session"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned for an unknown session id.
	ErrSessionNotFound = session.ErrNotFound
	// ErrResultNotFound is returned when a result index is outside the
	// current result set.
	ErrResultNotFound = errors.New("result not found")
)

// WidgetService runs the widget operations against a session's state.
type WidgetService struct {
	Cfg      *config.Config
	Store    *session.MemoryStore
	Provider cocktaildb.Provider
}

// NewWidgetService creates a new WidgetService.
func NewWidgetService(cfg *config.Config, store *session.MemoryStore, provider cocktaildb.Provider) *WidgetService {
	return &WidgetService{
		Cfg:      cfg,
		Store:    store,
		Provider: provider,
	}
}

// Snapshot is the read view of a session handed to the presentation layer.
type Snapshot struct {
	SessionID    string              `json:"session_id"`
	Query        string              `json:"query"`
	Status       app.SearchStatus    `json:"status"`
	Searched     bool                `json:"searched"`
	Results      []models.Drink      `json:"results"`
	ShoppingList []string            `json:"shopping_list"`
	Notification notify.Notification `json:"notification"`
}

// Session returns the session for id.
func (s *WidgetService) Session(id string) (*session.Session, error) {
	return s.Store.Get(id)
}

// Snapshot returns the current view of a session.
func (s *WidgetService) Snapshot(id string) (*Snapshot, error) {
	sess, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	return snapshotLocked(sess), nil
}

// SetQuery replaces the session's query.
func (s *WidgetService) SetQuery(id, text string) (*Snapshot, error) {
	sess, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}
	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	sess.State = app.SetQuery(sess.State, text)
	return snapshotLocked(sess), nil
}

// Search looks up the session's current query. A blank query does nothing.
// Lookup failures are logged and surfaced only through the notification; the
// returned error is non-nil only for an unknown session.
//
// The lookup is detached from ctx cancellation so a started lookup always
// runs to completion or to the client timeout. Only the answer to the most
// recently issued lookup is applied.
func (s *WidgetService) Search(ctx context.Context, id string) (*Snapshot, error) {
	sess, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}
	log := logger.WithSession(id)

	sess.Mu.Lock()
	next, ticket, ok := app.BeginSearch(sess.State)
	if !ok {
		snap := snapshotLocked(sess)
		sess.Mu.Unlock()
		return snap, nil
	}
	sess.State = next
	sess.Notifier.Show(notify.MsgSearching)
	sess.Mu.Unlock()

	log.Debug("lookup issued", zap.String("query", ticket.Query), zap.Uint64("seq", ticket.Seq))

	drinks, lookupErr := s.Provider.SearchDrinks(context.WithoutCancel(ctx), ticket.Query)

	// The session may have been swept while the lookup ran.
	if _, err := s.Store.Get(id); err != nil {
		log.Debug("session swept during lookup", zap.Uint64("seq", ticket.Seq))
		return nil, err
	}

	sess.Mu.Lock()
	var (
		msg     string
		applied bool
	)
	if lookupErr != nil {
		log.Error("failed to fetch drinks", zap.String("query", ticket.Query), zap.Error(lookupErr))
		next, msg, applied = app.FailSearch(sess.State, ticket)
	} else {
		next, msg, applied = app.CompleteSearch(sess.State, ticket, drinks)
	}
	if applied {
		sess.State = next
		sess.Notifier.Show(msg)
	} else {
		log.Debug("discarded stale lookup", zap.Uint64("seq", ticket.Seq), zap.Uint64("latest", sess.State.LatestSeq()))
	}
	snap := snapshotLocked(sess)
	sess.Mu.Unlock()
	return snap, nil
}

// AddFromResult adds the ingredients of the result at index to the shopping
// list.
func (s *WidgetService) AddFromResult(id string, index int) (*Snapshot, error) {
	sess, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}

	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if index < 0 || index >= len(sess.State.Results) {
		return nil, fmt.Errorf("%w: index %d", ErrResultNotFound, index)
	}
	next, msg := app.AddFromRecord(sess.State, sess.State.Results[index])
	sess.State = next
	sess.Notifier.Show(msg)
	return snapshotLocked(sess), nil
}

// RemoveIngredient drops name from the shopping list.
func (s *WidgetService) RemoveIngredient(id, name string) (*Snapshot, error) {
	sess, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}

	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	next, msg := app.RemoveIngredient(sess.State, name)
	sess.State = next
	sess.Notifier.Show(msg)
	return snapshotLocked(sess), nil
}

// PrintList renders the session's shopping list as a printable document.
func (s *WidgetService) PrintList(id string) ([]byte, error) {
	sess, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}

	sess.Mu.Lock()
	items := sess.State.List.Items()
	sess.Mu.Unlock()

	return printout.Export(items)
}

func snapshotLocked(sess *session.Session) *Snapshot {
	results := make([]models.Drink, len(sess.State.Results))
	copy(results, sess.State.Results)
	return &Snapshot{
		SessionID:    sess.ID,
		Query:        sess.State.Query,
		Status:       sess.State.Status,
		Searched:     sess.State.Searched,
		Results:      results,
		ShoppingList: sess.State.List.Items(),
		Notification: sess.Notifier.Snapshot(),
	}
}
