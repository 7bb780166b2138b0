package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (a *App) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("[POST] /api/cards")
	var cmd CreateCardCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	card, err := a.CreateCard(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (a *App) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[PATCH] /api/cards/%s", id)
	var cmd UpdateCardCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	card, err := a.UpdateCard(r.Context(), id, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *App) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[DELETE] /api/cards/%s", id)
	if err := a.DeleteCard(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmation{Message: "Card deleted successfully"})
}

func (a *App) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("cardId", mux.Vars(r)["cardId"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[PATCH] /api/cards/%s/move", id)
	var cmd MoveCardCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := a.MoveCard(r.Context(), id, cmd); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmation{Message: "Card moved successfully"})
}
