package main

import "context"

// Store is the entity store contract the coordinators run against. Each call
// is atomic on a single document at the storage layer; sequences of calls are
// not transactional (see coordinator.go for the ordering discipline).
//
// Find*, Set*, Push*, Pull* and UpdateCard return *NotFoundError when the
// target document does not exist. UpdateCard with both fields nil returns the
// card unchanged. Bulk deletes silently ignore absent ids.
type Store interface {
	InsertBoard(ctx context.Context, b *Board) error
	FindBoard(ctx context.Context, id string) (*Board, error)
	FindBoards(ctx context.Context) ([]BoardSummary, error)
	SetBoardTitle(ctx context.Context, id, title string) (*Board, error)
	SetBoardLists(ctx context.Context, id string, listIDs []string) (*Board, error)
	PushBoardList(ctx context.Context, boardID, listID string) error
	PullBoardList(ctx context.Context, boardID, listID string) error
	DeleteBoard(ctx context.Context, id string) error

	InsertList(ctx context.Context, l *List) error
	FindList(ctx context.Context, id string) (*List, error)
	FindLists(ctx context.Context, ids []string) ([]List, error)
	SetListTitle(ctx context.Context, id, title string) (*List, error)
	SetListCards(ctx context.Context, id string, cardIDs []string) error
	PushListCard(ctx context.Context, listID, cardID string) error
	PullListCard(ctx context.Context, listID, cardID string) error
	DeleteLists(ctx context.Context, ids []string) error

	InsertCard(ctx context.Context, c *Card) error
	FindCard(ctx context.Context, id string) (*Card, error)
	FindCards(ctx context.Context, ids []string) ([]Card, error)
	UpdateCard(ctx context.Context, id string, title, description *string) (*Card, error)
	SetCardList(ctx context.Context, cardID, listID string) error
	DeleteCards(ctx context.Context, ids []string) error
}
