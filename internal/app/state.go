// Package app holds the widget state and the pure transitions between states.
// Transitions never mutate their input; each returns the next State.
package app

import (
	"strings"

	"github.com/windoze95/mixlist/internal/models"
	"github.com/windoze95/mixlist/internal/notify"
	"github.com/windoze95/mixlist/internal/shopping"
)

// SearchStatus is where the search controller is in its lifecycle.
type SearchStatus string

const (
	SearchIdle      SearchStatus = "idle"
	SearchSearching SearchStatus = "searching"
	SearchResults   SearchStatus = "results"
	SearchEmpty     SearchStatus = "empty"
	SearchError     SearchStatus = "error"
)

// State is everything one session of the widget owns.
type State struct {
	Query    string
	Results  []models.Drink
	Searched bool
	Status   SearchStatus
	List     *shopping.List

	// seq is the number of the most recently issued lookup.
	seq uint64
}

// Ticket identifies one issued lookup.
type Ticket struct {
	Seq   uint64
	Query string
}

// New returns the initial state.
func New() State {
	return State{Status: SearchIdle, List: shopping.NewList()}
}

// LatestSeq returns the sequence number of the latest issued lookup.
func (s State) LatestSeq() uint64 {
	return s.seq
}

// SetQuery replaces the query. Any text is accepted.
func SetQuery(s State, text string) State {
	s.Query = text
	return s
}

// BeginSearch issues a lookup for the current query. It returns false and the
// unchanged state when the query is blank.
func BeginSearch(s State) (State, Ticket, bool) {
	if strings.TrimSpace(s.Query) == "" {
		return s, Ticket{}, false
	}
	s.seq++
	s.Status = SearchSearching
	return s, Ticket{Seq: s.seq, Query: s.Query}, true
}

// CompleteSearch applies a lookup answer. Answers for anything but the latest
// ticket are discarded and reported as not applied.
func CompleteSearch(s State, t Ticket, drinks []models.Drink) (State, string, bool) {
	if t.Seq != s.seq {
		return s, "", false
	}
	s.Searched = true
	if len(drinks) == 0 {
		s.Results = []models.Drink{}
		s.Status = SearchEmpty
		return s, notify.MsgNoResults, true
	}
	s.Results = append([]models.Drink(nil), drinks...)
	s.Status = SearchResults
	return s, notify.MsgResults, true
}

// FailSearch records a failed lookup. Prior results are kept.
func FailSearch(s State, t Ticket) (State, string, bool) {
	if t.Seq != s.seq {
		return s, "", false
	}
	s.Status = SearchError
	return s, notify.MsgFetchError, true
}

// AddFromRecord unions the drink's ingredients into the shopping list. The
// message is returned even when nothing new was added.
func AddFromRecord(s State, d models.Drink) (State, string) {
	list := s.List.Clone()
	list.Add(d.IngredientNames()...)
	s.List = list
	return s, notify.MsgIngredientsAdded
}

// RemoveIngredient drops name from the shopping list. Removing an absent name
// leaves the list as is.
func RemoveIngredient(s State, name string) (State, string) {
	list := s.List.Clone()
	list.Remove(name)
	s.List = list
	return s, notify.MsgIngredientRemoved
}
