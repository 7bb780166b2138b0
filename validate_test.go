package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Errors
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, isObjectID("64a1f0c2b3d4e5f601234567"))
	assert.False(t, isObjectID(""))
	assert.False(t, isObjectID("not-an-id"))
	assert.False(t, isObjectID("64a1f0c2b3d4e5f60123456"))   // 23 chars
	assert.False(t, isObjectID("64a1f0c2b3d4e5f6012345678")) // 25 chars
	assert.False(t, isObjectID("64a1f0c2b3d4e5f60123456g"))  // non-hex
	assert.True(t, isObjectID(newID()))
}

func TestCreateBoardCommandValidate(t *testing.T) {
	assert.NoError(t, CreateBoardCommand{Title: "Sprint"}.Validate())
	errs := fieldErrors(t, CreateBoardCommand{}.Validate())
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
}

func TestCreateListCommandValidate(t *testing.T) {
	assert.NoError(t, CreateListCommand{Title: "Todo", BoardID: newID()}.Validate())

	errs := fieldErrors(t, CreateListCommand{Title: "", BoardID: "nope"}.Validate())
	assert.Len(t, errs, 2)
}

func TestCreateCardCommandValidate(t *testing.T) {
	assert.NoError(t, CreateCardCommand{Title: "Task", ListID: newID()}.Validate())
	errs := fieldErrors(t, CreateCardCommand{Title: "Task", ListID: "bad"}.Validate())
	require.Len(t, errs, 1)
	assert.Equal(t, "listId", errs[0].Field)
}

func TestUpdateCardCommandValidate(t *testing.T) {
	assert.NoError(t, UpdateCardCommand{Title: strPtr("New")}.Validate())
	assert.NoError(t, UpdateCardCommand{Description: strPtr("")}.Validate())

	// Both absent is rejected.
	err := UpdateCardCommand{}.Validate()
	require.Error(t, err)

	// A provided title must still be non-empty.
	err = UpdateCardCommand{Title: strPtr("")}.Validate()
	require.Error(t, err)
}

func TestMoveCardCommandValidate(t *testing.T) {
	valid := MoveCardCommand{
		SourceListID:      newID(),
		DestinationListID: newID(),
		DestinationIndex:  intPtr(0),
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.DestinationIndex = nil
	errs := fieldErrors(t, missing.Validate())
	require.Len(t, errs, 1)
	assert.Equal(t, "destinationIndex", errs[0].Field)

	negative := valid
	negative.DestinationIndex = intPtr(-1)
	errs = fieldErrors(t, negative.Validate())
	require.Len(t, errs, 1)

	badIDs := MoveCardCommand{SourceListID: "x", DestinationListID: "y", DestinationIndex: intPtr(0)}
	errs = fieldErrors(t, badIDs.Validate())
	assert.Len(t, errs, 2)
}

func TestReorderListsCommandValidate(t *testing.T) {
	assert.NoError(t, ReorderListsCommand{OrderedListIDs: []string{newID(), newID()}}.Validate())
	assert.NoError(t, ReorderListsCommand{}.Validate())
	err := ReorderListsCommand{OrderedListIDs: []string{newID(), "oops"}}.Validate()
	require.Error(t, err)
}

func TestPathID(t *testing.T) {
	id := newID()
	got, err := pathID("id", id)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = pathID("id", "nope")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}
