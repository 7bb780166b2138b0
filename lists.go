package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (a *App) handleCreateList(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("[POST] /api/lists")
	var cmd CreateListCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	list, err := a.CreateList(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (a *App) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[PATCH] /api/lists/%s", id)
	var cmd UpdateListCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	list, err := a.UpdateList(r.Context(), id, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *App) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[DELETE] /api/lists/%s", id)
	if err := a.DeleteList(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmation{Message: "List and its cards deleted successfully"})
}
