package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteListCascades(t *testing.T) {
	app, store, _ := newTestApp()
	ctx := context.Background()

	board := mustBoard(t, app, "Project")
	list := mustList(t, app, board.ID, "Todo")
	keep := mustList(t, app, board.ID, "Done")
	x := mustCard(t, app, list.ID, "X")
	y := mustCard(t, app, list.ID, "Y")
	survivor := mustCard(t, app, keep.ID, "Z")

	require.NoError(t, app.DeleteList(ctx, list.ID))

	_, err := store.FindCard(ctx, x.ID)
	assert.True(t, isNotFound(err))
	_, err = store.FindCard(ctx, y.ID)
	assert.True(t, isNotFound(err))
	_, err = store.FindList(ctx, list.ID)
	assert.True(t, isNotFound(err))

	got, err := store.FindBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, got.Lists)

	_, err = store.FindCard(ctx, survivor.ID)
	require.NoError(t, err)
	checkInvariants(t, store)
}

func TestDeleteListNotFound(t *testing.T) {
	app, _, _ := newTestApp()
	err := app.DeleteList(context.Background(), newID())
	require.Error(t, err)
	assert.True(t, isNotFound(err))
}

func TestDeleteBoardCascades(t *testing.T) {
	app, store, _ := newTestApp()
	ctx := context.Background()

	board := mustBoard(t, app, "Doomed")
	l1 := mustList(t, app, board.ID, "One")
	l2 := mustList(t, app, board.ID, "Two")
	c1 := mustCard(t, app, l1.ID, "A")
	c2 := mustCard(t, app, l2.ID, "B")

	other := mustBoard(t, app, "Kept")
	otherList := mustList(t, app, other.ID, "Keep")
	otherCard := mustCard(t, app, otherList.ID, "K")

	require.NoError(t, app.DeleteBoard(ctx, board.ID))

	for _, id := range []string{c1.ID, c2.ID} {
		_, err := store.FindCard(ctx, id)
		assert.True(t, isNotFound(err))
	}
	for _, id := range []string{l1.ID, l2.ID} {
		_, err := store.FindList(ctx, id)
		assert.True(t, isNotFound(err))
	}
	_, err := store.FindBoard(ctx, board.ID)
	assert.True(t, isNotFound(err))

	// Unrelated board untouched.
	_, err = store.FindBoard(ctx, other.ID)
	require.NoError(t, err)
	_, err = store.FindCard(ctx, otherCard.ID)
	require.NoError(t, err)
	checkInvariants(t, store)
}

func TestDeleteBoardNotFound(t *testing.T) {
	app, _, _ := newTestApp()
	err := app.DeleteBoard(context.Background(), newID())
	require.Error(t, err)
	assert.True(t, isNotFound(err))
}

func TestDeleteEmptyBoard(t *testing.T) {
	app, store, _ := newTestApp()
	ctx := context.Background()

	board := mustBoard(t, app, "Empty")
	require.NoError(t, app.DeleteBoard(ctx, board.ID))
	_, err := store.FindBoard(ctx, board.ID)
	assert.True(t, isNotFound(err))
}
