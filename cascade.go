package main

import "context"

// Cascade deletion keeps referential integrity when a list or a board goes
// away. Each entry point is one logical unit from the caller's point of view
// even though it spans several document deletes; the steps run cards-first so
// the window in which a surviving parent references a deleted child is as
// small as possible for concurrent readers.

// DeleteList removes a list, all cards it owns, and the list's id from its
// board's order array.
func (a *App) DeleteList(ctx context.Context, listID string) error {
	list, err := a.store.FindList(ctx, listID)
	if err != nil {
		return err
	}
	// Both order arrays involved: the list's own (a concurrent move may be
	// rewriting it) and the board's (pulled below).
	keys := []string{listID, list.Board}
	if !a.lockAll(keys) {
		return errConcurrentMutation()
	}
	defer a.unlockAll(keys)

	if err := a.store.DeleteCards(ctx, list.Cards); err != nil {
		return err
	}
	// The board may itself be mid-deletion; a missing board just means there
	// is no order array left to detach from.
	if err := a.store.PullBoardList(ctx, list.Board, listID); err != nil {
		if !isNotFound(err) {
			return err
		}
	}
	return a.store.DeleteLists(ctx, []string{listID})
}

// DeleteBoard removes a board together with every list it references and
// every card those lists reference.
func (a *App) DeleteBoard(ctx context.Context, boardID string) error {
	board, err := a.store.FindBoard(ctx, boardID)
	if err != nil {
		return err
	}
	lists, err := a.store.FindLists(ctx, board.Lists)
	if err != nil {
		return err
	}
	cardIDs := []string{}
	for _, l := range lists {
		cardIDs = append(cardIDs, l.Cards...)
	}
	if err := a.store.DeleteCards(ctx, cardIDs); err != nil {
		return err
	}
	if err := a.store.DeleteLists(ctx, board.Lists); err != nil {
		return err
	}
	return a.store.DeleteBoard(ctx, boardID)
}
