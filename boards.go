package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "body", Message: "malformed JSON"}}}
	}
	return nil
}

type confirmation struct {
	Message string `json:"message"`
}

func (a *App) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("[POST] /api/boards")
	var cmd CreateBoardCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	board, err := a.CreateBoard(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, board)
}

func (a *App) handleListBoards(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("[GET] /api/boards")
	boards, err := a.ListBoards(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

func (a *App) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[GET] /api/boards/%s", id)
	view, err := a.GetBoard(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *App) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[PATCH] /api/boards/%s", id)
	var cmd UpdateBoardCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	board, err := a.UpdateBoard(r.Context(), id, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (a *App) handleReorderLists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[PATCH] /api/boards/%s/reorder-lists", id)
	var cmd ReorderListsCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	board, err := a.ReorderLists(r.Context(), id, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (a *App) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[DELETE] /api/boards/%s", id)
	if err := a.DeleteBoard(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmation{Message: "Board and all associated content deleted successfully"})
}

func (a *App) handleExportBoard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID("id", mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infof("[POST] /api/boards/%s/export", id)
	if a.snapshots == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: "Snapshot export is not configured"})
		return
	}
	view, err := a.GetBoard(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	key, err := a.snapshots.SaveSnapshot(r.Context(), view)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Board snapshot exported", "key": key})
}
