package main

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder captures published events in place of the live hub.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(boardID string, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func newTestApp() (*App, *memStore, *recorder) {
	store := newMemStore()
	rec := &recorder{}
	return newApp(store, rec), store, rec
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func mustBoard(t *testing.T, a *App, title string) *Board {
	t.Helper()
	b, err := a.CreateBoard(context.Background(), CreateBoardCommand{Title: title})
	require.NoError(t, err)
	return b
}

func mustList(t *testing.T, a *App, boardID, title string) *List {
	t.Helper()
	l, err := a.CreateList(context.Background(), CreateListCommand{Title: title, BoardID: boardID})
	require.NoError(t, err)
	return l
}

func mustCard(t *testing.T, a *App, listID, title string) *Card {
	t.Helper()
	c, err := a.CreateCard(context.Background(), CreateCardCommand{Title: title, ListID: listID})
	require.NoError(t, err)
	return c
}

// checkInvariants sweeps the whole store and asserts the referential
// integrity rules: every card is owned by exactly one existing list whose
// cards array names it exactly once, every list by exactly one existing
// board, and no order array holds duplicates or dangling ids.
func checkInvariants(t *testing.T, store *memStore) {
	t.Helper()
	store.mu.RLock()
	defer store.mu.RUnlock()

	for id, card := range store.cards {
		owner, ok := store.lists[card.List]
		require.True(t, ok, "card %s references missing list %s", id, card.List)
		count := 0
		for _, cid := range owner.Cards {
			if cid == id {
				count++
			}
		}
		require.Equal(t, 1, count, "card %s must appear exactly once in its list", id)
		for lid, l := range store.lists {
			if lid == card.List {
				continue
			}
			for _, cid := range l.Cards {
				require.NotEqual(t, id, cid, "card %s also appears in list %s", id, lid)
			}
		}
	}

	for id, list := range store.lists {
		owner, ok := store.boards[list.Board]
		require.True(t, ok, "list %s references missing board %s", id, list.Board)
		count := 0
		for _, lid := range owner.Lists {
			if lid == id {
				count++
			}
		}
		require.Equal(t, 1, count, "list %s must appear exactly once on its board", id)
		seen := map[string]bool{}
		for _, cid := range list.Cards {
			require.False(t, seen[cid], "duplicate card id %s in list %s", cid, id)
			seen[cid] = true
			_, ok := store.cards[cid]
			require.True(t, ok, "list %s references deleted card %s", id, cid)
		}
	}

	for id, board := range store.boards {
		seen := map[string]bool{}
		for _, lid := range board.Lists {
			require.False(t, seen[lid], "duplicate list id %s on board %s", lid, id)
			seen[lid] = true
			_, ok := store.lists[lid]
			require.True(t, ok, "board %s references deleted list %s", id, lid)
		}
	}
}
