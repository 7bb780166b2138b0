package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/EagleChen/mapmutex"
)

// App coordinates structural mutations against the store and fans the
// resulting change events out through the broadcaster. Multi-document
// operations issue their writes in a fixed order and each waits for the
// prior one; there is no cross-document transaction (see DESIGN.md).
type App struct {
	store     Store
	hub       Broadcaster
	locks     *mapmutex.Mutex
	ai        *GeminiClient
	snapshots *SnapshotStore
}

func newApp(store Store, hub Broadcaster) *App {
	return &App{
		store: store,
		hub:   hub,
		locks: mapmutex.NewMapMutex(),
	}
}

// lockAll acquires keyed locks in sorted order so two operations touching the
// same lists cannot deadlock. On contention it backs out and the caller
// reports ConflictError without having written anything.
//
// Every path that rewrites or pushes/pulls an order array takes the owning
// document's key here; a whole-array write can therefore never overwrite a
// concurrent push or resurrect a concurrently pulled id.
func (a *App) lockAll(keys []string) bool {
	sort.Strings(keys)
	for i, k := range keys {
		if !a.locks.TryLock(k) {
			for _, held := range keys[:i] {
				a.locks.Unlock(held)
			}
			return false
		}
	}
	return true
}

func (a *App) unlockAll(keys []string) {
	for _, k := range keys {
		a.locks.Unlock(k)
	}
}

func errConcurrentMutation() error {
	return &ConflictError{Message: "a concurrent operation is touching the same list, retry"}
}

// --- Boards ---

func (a *App) CreateBoard(ctx context.Context, cmd CreateBoardCommand) (*Board, error) {
	b := &Board{ID: newID(), Title: cmd.Title, Lists: []string{}}
	if err := a.store.InsertBoard(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (a *App) ListBoards(ctx context.Context) ([]BoardSummary, error) {
	return a.store.FindBoards(ctx)
}

// GetBoard expands a board with its lists and cards, both in order-array
// order. Ids that no longer resolve are skipped.
func (a *App) GetBoard(ctx context.Context, boardID string) (*BoardView, error) {
	board, err := a.store.FindBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	lists, err := a.store.FindLists(ctx, board.Lists)
	if err != nil {
		return nil, err
	}
	listByID := make(map[string]List, len(lists))
	cardIDs := []string{}
	for _, l := range lists {
		listByID[l.ID] = l
		cardIDs = append(cardIDs, l.Cards...)
	}
	cards, err := a.store.FindCards(ctx, cardIDs)
	if err != nil {
		return nil, err
	}
	cardByID := make(map[string]Card, len(cards))
	for _, c := range cards {
		cardByID[c.ID] = c
	}

	view := &BoardView{ID: board.ID, Title: board.Title, Lists: []ListView{}}
	for _, listID := range board.Lists {
		l, ok := listByID[listID]
		if !ok {
			continue
		}
		lv := ListView{ID: l.ID, Title: l.Title, Board: l.Board, Cards: []Card{}}
		for _, cardID := range l.Cards {
			if c, ok := cardByID[cardID]; ok {
				lv.Cards = append(lv.Cards, c)
			}
		}
		view.Lists = append(view.Lists, lv)
	}
	return view, nil
}

func (a *App) UpdateBoard(ctx context.Context, boardID string, cmd UpdateBoardCommand) (*Board, error) {
	return a.store.SetBoardTitle(ctx, boardID, cmd.Title)
}

// ReorderLists replaces a board's list order. The supplied ids must be a
// permutation of the current order so the array cannot gain duplicates or
// references to lists the board does not own.
func (a *App) ReorderLists(ctx context.Context, boardID string, cmd ReorderListsCommand) (*Board, error) {
	if !a.lockAll([]string{boardID}) {
		return nil, errConcurrentMutation()
	}
	defer a.unlockAll([]string{boardID})

	board, err := a.store.FindBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !samePermutation(board.Lists, cmd.OrderedListIDs) {
		return nil, &ValidationError{Errors: []FieldError{{
			Field:   "orderedListIds",
			Message: "must be a permutation of the board's current lists",
		}}}
	}
	return a.store.SetBoardLists(ctx, boardID, cmd.OrderedListIDs)
}

// --- Lists ---

func (a *App) CreateList(ctx context.Context, cmd CreateListCommand) (*List, error) {
	keys := []string{cmd.BoardID}
	if !a.lockAll(keys) {
		return nil, errConcurrentMutation()
	}
	defer a.unlockAll(keys)

	if _, err := a.store.FindBoard(ctx, cmd.BoardID); err != nil {
		return nil, err
	}
	l := &List{ID: newID(), Title: cmd.Title, Board: cmd.BoardID, Cards: []string{}}
	if err := a.store.InsertList(ctx, l); err != nil {
		return nil, err
	}
	if err := a.store.PushBoardList(ctx, cmd.BoardID, l.ID); err != nil {
		return nil, err
	}
	return l, nil
}

func (a *App) UpdateList(ctx context.Context, listID string, cmd UpdateListCommand) (*List, error) {
	return a.store.SetListTitle(ctx, listID, cmd.Title)
}

// --- Cards ---

func (a *App) CreateCard(ctx context.Context, cmd CreateCardCommand) (*Card, error) {
	keys := []string{cmd.ListID}
	if !a.lockAll(keys) {
		return nil, errConcurrentMutation()
	}
	defer a.unlockAll(keys)

	if _, err := a.store.FindList(ctx, cmd.ListID); err != nil {
		return nil, err
	}
	c := &Card{ID: newID(), Title: cmd.Title, Description: "", List: cmd.ListID}
	if err := a.store.InsertCard(ctx, c); err != nil {
		return nil, err
	}
	if err := a.store.PushListCard(ctx, cmd.ListID, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *App) UpdateCard(ctx context.Context, cardID string, cmd UpdateCardCommand) (*Card, error) {
	return a.store.UpdateCard(ctx, cardID, cmd.Title, cmd.Description)
}

// MoveCard relocates a card within its list or across two lists, then
// publishes one board_updated event to the destination board's room.
//
// Ordering discipline: nothing is written until the destination list (and for
// same-list moves, the list) is known to exist. For a cross-list move the
// source pull commits first, then the destination insert, then the card's
// back-reference, restoring the membership invariant before returning.
func (a *App) MoveCard(ctx context.Context, cardID string, cmd MoveCardCommand) error {
	index := *cmd.DestinationIndex

	if _, err := a.store.FindCard(ctx, cardID); err != nil {
		return err
	}

	keys := []string{cmd.DestinationListID}
	if cmd.SourceListID != cmd.DestinationListID {
		keys = append(keys, cmd.SourceListID)
	}
	if !a.lockAll(keys) {
		return errConcurrentMutation()
	}
	defer a.unlockAll(keys)

	if cmd.SourceListID == cmd.DestinationListID {
		list, err := a.store.FindList(ctx, cmd.DestinationListID)
		if err != nil {
			return err
		}
		if err := a.store.SetListCards(ctx, list.ID, reorder(list.Cards, cardID, index)); err != nil {
			return err
		}
	} else {
		dest, err := a.store.FindList(ctx, cmd.DestinationListID)
		if err != nil {
			return err
		}
		if err := a.store.PullListCard(ctx, cmd.SourceListID, cardID); err != nil {
			return err
		}
		if err := a.store.SetListCards(ctx, dest.ID, reorder(dest.Cards, cardID, index)); err != nil {
			return err
		}
		if err := a.store.SetCardList(ctx, cardID, dest.ID); err != nil {
			return err
		}
	}

	// Resolve the board id for the room only after the writes. If this lookup
	// fails the move has already committed and only the notification is lost;
	// the caller sees the error and clients recover by refetching the board.
	list, err := a.store.FindList(ctx, cmd.DestinationListID)
	if err != nil {
		return err
	}
	a.hub.Publish(list.Board, Event{
		Type:              eventBoardUpdated,
		BoardID:           list.Board,
		CardID:            cardID,
		SourceListID:      cmd.SourceListID,
		DestinationListID: cmd.DestinationListID,
		Message:           fmt.Sprintf("Card was moved on board %s", list.Board),
	})
	return nil
}

func (a *App) DeleteCard(ctx context.Context, cardID string) error {
	card, err := a.store.FindCard(ctx, cardID)
	if err != nil {
		return err
	}
	keys := []string{card.List}
	if !a.lockAll(keys) {
		return errConcurrentMutation()
	}
	defer a.unlockAll(keys)

	// A missing owner list means the card is already detached; the delete
	// still proceeds.
	if err := a.store.PullListCard(ctx, card.List, cardID); err != nil {
		if !isNotFound(err) {
			return err
		}
	}
	return a.store.DeleteCards(ctx, []string{cardID})
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, id := range a {
		counts[id]++
	}
	for _, id := range b {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}
