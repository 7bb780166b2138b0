package main

import (
	"context"
	"sync"
)

// memStore is an in-memory Store with the same per-document atomicity as the
// MongoDB backend. Used by the test suite and the storage=memory dev mode.
type memStore struct {
	mu     sync.RWMutex
	boards map[string]*Board
	lists  map[string]*List
	cards  map[string]*Card
}

func newMemStore() *memStore {
	return &memStore{
		boards: map[string]*Board{},
		lists:  map[string]*List{},
		cards:  map[string]*Card{},
	}
}

func copyIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func copyBoard(b *Board) *Board {
	cp := *b
	cp.Lists = copyIDs(b.Lists)
	return &cp
}

func copyList(l *List) *List {
	cp := *l
	cp.Cards = copyIDs(l.Cards)
	return &cp
}

// --- Boards ---

func (s *memStore) InsertBoard(_ context.Context, b *Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[b.ID] = copyBoard(b)
	return nil
}

func (s *memStore) FindBoard(_ context.Context, id string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, &NotFoundError{Resource: "board", ID: id}
	}
	return copyBoard(b), nil
}

func (s *memStore) FindBoards(_ context.Context) ([]BoardSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []BoardSummary{}
	for _, b := range s.boards {
		out = append(out, BoardSummary{ID: b.ID, Title: b.Title})
	}
	return out, nil
}

func (s *memStore) SetBoardTitle(_ context.Context, id, title string) (*Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, &NotFoundError{Resource: "board", ID: id}
	}
	b.Title = title
	return copyBoard(b), nil
}

func (s *memStore) SetBoardLists(_ context.Context, id string, listIDs []string) (*Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, &NotFoundError{Resource: "board", ID: id}
	}
	b.Lists = copyIDs(listIDs)
	return copyBoard(b), nil
}

func (s *memStore) PushBoardList(_ context.Context, boardID, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[boardID]
	if !ok {
		return &NotFoundError{Resource: "board", ID: boardID}
	}
	b.Lists = append(b.Lists, listID)
	return nil
}

func (s *memStore) PullBoardList(_ context.Context, boardID, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[boardID]
	if !ok {
		return &NotFoundError{Resource: "board", ID: boardID}
	}
	b.Lists = pull(b.Lists, listID)
	return nil
}

func (s *memStore) DeleteBoard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, id)
	return nil
}

// --- Lists ---

func (s *memStore) InsertList(_ context.Context, l *List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[l.ID] = copyList(l)
	return nil
}

func (s *memStore) FindList(_ context.Context, id string) (*List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[id]
	if !ok {
		return nil, &NotFoundError{Resource: "list", ID: id}
	}
	return copyList(l), nil
}

func (s *memStore) FindLists(_ context.Context, ids []string) ([]List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []List{}
	for _, id := range ids {
		if l, ok := s.lists[id]; ok {
			out = append(out, *copyList(l))
		}
	}
	return out, nil
}

func (s *memStore) SetListTitle(_ context.Context, id, title string) (*List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[id]
	if !ok {
		return nil, &NotFoundError{Resource: "list", ID: id}
	}
	l.Title = title
	return copyList(l), nil
}

func (s *memStore) SetListCards(_ context.Context, id string, cardIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[id]
	if !ok {
		return &NotFoundError{Resource: "list", ID: id}
	}
	l.Cards = copyIDs(cardIDs)
	return nil
}

func (s *memStore) PushListCard(_ context.Context, listID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[listID]
	if !ok {
		return &NotFoundError{Resource: "list", ID: listID}
	}
	l.Cards = append(l.Cards, cardID)
	return nil
}

func (s *memStore) PullListCard(_ context.Context, listID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[listID]
	if !ok {
		return &NotFoundError{Resource: "list", ID: listID}
	}
	l.Cards = pull(l.Cards, cardID)
	return nil
}

func (s *memStore) DeleteLists(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.lists, id)
	}
	return nil
}

// --- Cards ---

func (s *memStore) InsertCard(_ context.Context, c *Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.cards[c.ID] = &cp
	return nil
}

func (s *memStore) FindCard(_ context.Context, id string) (*Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	if !ok {
		return nil, &NotFoundError{Resource: "card", ID: id}
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) FindCards(_ context.Context, ids []string) ([]Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Card{}
	for _, id := range ids {
		if c, ok := s.cards[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memStore) UpdateCard(_ context.Context, id string, title, description *string) (*Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return nil, &NotFoundError{Resource: "card", ID: id}
	}
	if title != nil {
		c.Title = *title
	}
	if description != nil {
		c.Description = *description
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) SetCardList(_ context.Context, cardID, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[cardID]
	if !ok {
		return &NotFoundError{Resource: "card", ID: cardID}
	}
	c.List = listID
	return nil
}

func (s *memStore) DeleteCards(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.cards, id)
	}
	return nil
}

func pull(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
