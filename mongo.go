package main

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// newID generates a 24-hex entity id.
func newID() string {
	return bson.NewObjectID().Hex()
}

// mongoStore implements Store on MongoDB. Order-array mutations map onto
// $push/$pull/$set so each one is a single atomic document update.
type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func newMongoStore(ctx context.Context, uri, database string) (*mongoStore, error) {
	opts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return &mongoStore{client: client, db: client.Database(database)}, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *mongoStore) boards() *mongo.Collection { return s.db.Collection("boards") }
func (s *mongoStore) lists() *mongo.Collection  { return s.db.Collection("lists") }
func (s *mongoStore) cards() *mongo.Collection  { return s.db.Collection("cards") }

// --- Boards ---

func (s *mongoStore) InsertBoard(ctx context.Context, b *Board) error {
	if _, err := s.boards().InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert board: %w", err)
	}
	return nil
}

func (s *mongoStore) FindBoard(ctx context.Context, id string) (*Board, error) {
	var b Board
	err := s.boards().FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "board", ID: id}
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return &b, nil
}

func (s *mongoStore) FindBoards(ctx context.Context) ([]BoardSummary, error) {
	cur, err := s.boards().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	boards := []BoardSummary{}
	if err := cur.All(ctx, &boards); err != nil {
		return nil, fmt.Errorf("failed to decode boards: %w", err)
	}
	return boards, nil
}

func (s *mongoStore) SetBoardTitle(ctx context.Context, id, title string) (*Board, error) {
	res, err := s.boards().UpdateByID(ctx, id, bson.M{"$set": bson.M{"title": title}})
	if err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, &NotFoundError{Resource: "board", ID: id}
	}
	return s.FindBoard(ctx, id)
}

func (s *mongoStore) SetBoardLists(ctx context.Context, id string, listIDs []string) (*Board, error) {
	res, err := s.boards().UpdateByID(ctx, id, bson.M{"$set": bson.M{"lists": listIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to reorder lists: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, &NotFoundError{Resource: "board", ID: id}
	}
	return s.FindBoard(ctx, id)
}

func (s *mongoStore) PushBoardList(ctx context.Context, boardID, listID string) error {
	res, err := s.boards().UpdateByID(ctx, boardID, bson.M{"$push": bson.M{"lists": listID}})
	if err != nil {
		return fmt.Errorf("failed to attach list to board: %w", err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Resource: "board", ID: boardID}
	}
	return nil
}

func (s *mongoStore) PullBoardList(ctx context.Context, boardID, listID string) error {
	res, err := s.boards().UpdateByID(ctx, boardID, bson.M{"$pull": bson.M{"lists": listID}})
	if err != nil {
		return fmt.Errorf("failed to detach list from board: %w", err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Resource: "board", ID: boardID}
	}
	return nil
}

func (s *mongoStore) DeleteBoard(ctx context.Context, id string) error {
	if _, err := s.boards().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// --- Lists ---

func (s *mongoStore) InsertList(ctx context.Context, l *List) error {
	if _, err := s.lists().InsertOne(ctx, l); err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}
	return nil
}

func (s *mongoStore) FindList(ctx context.Context, id string) (*List, error) {
	var l List
	err := s.lists().FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "list", ID: id}
		}
		return nil, fmt.Errorf("failed to load list: %w", err)
	}
	return &l, nil
}

func (s *mongoStore) FindLists(ctx context.Context, ids []string) ([]List, error) {
	cur, err := s.lists().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}
	lists := []List{}
	if err := cur.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode lists: %w", err)
	}
	return lists, nil
}

func (s *mongoStore) SetListTitle(ctx context.Context, id, title string) (*List, error) {
	res, err := s.lists().UpdateByID(ctx, id, bson.M{"$set": bson.M{"title": title}})
	if err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, &NotFoundError{Resource: "list", ID: id}
	}
	return s.FindList(ctx, id)
}

func (s *mongoStore) SetListCards(ctx context.Context, id string, cardIDs []string) error {
	res, err := s.lists().UpdateByID(ctx, id, bson.M{"$set": bson.M{"cards": cardIDs}})
	if err != nil {
		return fmt.Errorf("failed to set list cards: %w", err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Resource: "list", ID: id}
	}
	return nil
}

func (s *mongoStore) PushListCard(ctx context.Context, listID, cardID string) error {
	res, err := s.lists().UpdateByID(ctx, listID, bson.M{"$push": bson.M{"cards": cardID}})
	if err != nil {
		return fmt.Errorf("failed to attach card to list: %w", err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Resource: "list", ID: listID}
	}
	return nil
}

func (s *mongoStore) PullListCard(ctx context.Context, listID, cardID string) error {
	res, err := s.lists().UpdateByID(ctx, listID, bson.M{"$pull": bson.M{"cards": cardID}})
	if err != nil {
		return fmt.Errorf("failed to detach card from list: %w", err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Resource: "list", ID: listID}
	}
	return nil
}

func (s *mongoStore) DeleteLists(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.lists().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("failed to delete lists: %w", err)
	}
	return nil
}

// --- Cards ---

func (s *mongoStore) InsertCard(ctx context.Context, c *Card) error {
	if _, err := s.cards().InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

func (s *mongoStore) FindCard(ctx context.Context, id string) (*Card, error) {
	var c Card
	err := s.cards().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{Resource: "card", ID: id}
		}
		return nil, fmt.Errorf("failed to load card: %w", err)
	}
	return &c, nil
}

func (s *mongoStore) FindCards(ctx context.Context, ids []string) ([]Card, error) {
	cur, err := s.cards().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	cards := []Card{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return cards, nil
}

func (s *mongoStore) UpdateCard(ctx context.Context, id string, title, description *string) (*Card, error) {
	sets := bson.M{}
	if title != nil {
		sets["title"] = *title
	}
	if description != nil {
		sets["description"] = *description
	}
	// An empty $set is a server error; nothing to change, just load.
	if len(sets) == 0 {
		return s.FindCard(ctx, id)
	}
	res, err := s.cards().UpdateByID(ctx, id, bson.M{"$set": sets})
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, &NotFoundError{Resource: "card", ID: id}
	}
	return s.FindCard(ctx, id)
}

func (s *mongoStore) SetCardList(ctx context.Context, cardID, listID string) error {
	res, err := s.cards().UpdateByID(ctx, cardID, bson.M{"$set": bson.M{"list": listID}})
	if err != nil {
		return fmt.Errorf("failed to move card reference: %w", err)
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Resource: "card", ID: cardID}
	}
	return nil
}

func (s *mongoStore) DeleteCards(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.cards().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	return nil
}
