package main

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Commands are validated before they reach the coordinators; a command that
// fails validation has caused no side effect.

func isObjectID(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}

func checkObjectID(errs []FieldError, field, value string) []FieldError {
	if !isObjectID(value) {
		errs = append(errs, FieldError{Field: field, Message: "Invalid ObjectId"})
	}
	return errs
}

func checkTitle(errs []FieldError, field, value string) []FieldError {
	if value == "" {
		errs = append(errs, FieldError{Field: field, Message: "Title cannot be empty"})
	}
	return errs
}

func asValidationError(errs []FieldError) error {
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

type CreateBoardCommand struct {
	Title string `json:"title"`
}

func (c CreateBoardCommand) Validate() error {
	return asValidationError(checkTitle(nil, "title", c.Title))
}

type UpdateBoardCommand struct {
	Title string `json:"title"`
}

func (c UpdateBoardCommand) Validate() error {
	return asValidationError(checkTitle(nil, "title", c.Title))
}

type ReorderListsCommand struct {
	OrderedListIDs []string `json:"orderedListIds"`
}

func (c ReorderListsCommand) Validate() error {
	var errs []FieldError
	for _, id := range c.OrderedListIDs {
		if !isObjectID(id) {
			errs = append(errs, FieldError{Field: "orderedListIds", Message: "Invalid ObjectId"})
			break
		}
	}
	return asValidationError(errs)
}

type CreateListCommand struct {
	Title   string `json:"title"`
	BoardID string `json:"boardId"`
}

func (c CreateListCommand) Validate() error {
	errs := checkTitle(nil, "title", c.Title)
	errs = checkObjectID(errs, "boardId", c.BoardID)
	return asValidationError(errs)
}

type UpdateListCommand struct {
	Title string `json:"title"`
}

func (c UpdateListCommand) Validate() error {
	return asValidationError(checkTitle(nil, "title", c.Title))
}

type CreateCardCommand struct {
	Title  string `json:"title"`
	ListID string `json:"listId"`
}

func (c CreateCardCommand) Validate() error {
	errs := checkTitle(nil, "title", c.Title)
	errs = checkObjectID(errs, "listId", c.ListID)
	return asValidationError(errs)
}

// UpdateCardCommand requires at least one of title or description.
type UpdateCardCommand struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (c UpdateCardCommand) Validate() error {
	var errs []FieldError
	if c.Title == nil && c.Description == nil {
		errs = append(errs, FieldError{Field: "body", Message: "At least one field (title or description) must be provided for update"})
	}
	if c.Title != nil {
		errs = checkTitle(errs, "title", *c.Title)
	}
	return asValidationError(errs)
}

type MoveCardCommand struct {
	SourceListID      string `json:"sourceListId"`
	DestinationListID string `json:"destinationListId"`
	DestinationIndex  *int   `json:"destinationIndex"`
}

func (c MoveCardCommand) Validate() error {
	errs := checkObjectID(nil, "sourceListId", c.SourceListID)
	errs = checkObjectID(errs, "destinationListId", c.DestinationListID)
	if c.DestinationIndex == nil {
		errs = append(errs, FieldError{Field: "destinationIndex", Message: "destinationIndex is required"})
	} else if *c.DestinationIndex < 0 {
		errs = append(errs, FieldError{Field: "destinationIndex", Message: "destinationIndex must be >= 0"})
	}
	return asValidationError(errs)
}

type GenerateCommand struct {
	Prompt string `json:"prompt"`
}

func (c GenerateCommand) Validate() error {
	if c.Prompt == "" {
		return &ValidationError{Errors: []FieldError{{Field: "prompt", Message: "A prompt is required."}}}
	}
	return nil
}

// pathID validates a path parameter as an entity id.
func pathID(field, value string) (string, error) {
	if !isObjectID(value) {
		return "", &ValidationError{Errors: []FieldError{{Field: field, Message: "Invalid ObjectId"}}}
	}
	return value, nil
}
