package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; the environment wins either way.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	cfg, err := loadConfig("config.yml")
	if err != nil {
		zap.S().Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var store Store
	switch cfg.Storage.Backend {
	case "memory":
		zap.S().Warnf("Using in-memory storage, all data is lost on restart")
		store = newMemStore()
	case "mongo":
		mongoStore, err := newMongoStore(ctx, cfg.Storage.URI, cfg.Storage.Database)
		if err != nil {
			zap.S().Fatalf("Failed to init MongoDB: %v", err)
		}
		defer mongoStore.Close(ctx)
		store = mongoStore
	default:
		zap.S().Fatalf("Unknown storage backend: %s", cfg.Storage.Backend)
	}

	hub := newHub()
	app := newApp(store, hub)

	if cfg.S3 != nil {
		snapshots, err := NewSnapshotStore(ctx, *cfg.S3)
		if err != nil {
			zap.S().Fatalf("Failed to init S3 snapshots: %v", err)
		}
		app.snapshots = snapshots
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		app.ai = NewGeminiClient(key, cfg.AI.Model)
	} else {
		zap.S().Warnf("GEMINI_API_KEY not set, AI suggestions are disabled")
	}

	r := mux.NewRouter()
	app.routes(r, hub)

	zap.S().Infof("Flowboard server starting on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		zap.S().Fatalf("Server stopped: %v", err)
	}
}

func (a *App) routes(r *mux.Router, hub *Hub) {
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Flowboard API!", "status": "OK"})
	}).Methods("GET")

	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/boards", a.handleCreateBoard).Methods("POST")
	api.HandleFunc("/boards", a.handleListBoards).Methods("GET")
	api.HandleFunc("/boards/{id}", a.handleGetBoard).Methods("GET")
	api.HandleFunc("/boards/{id}", a.handleUpdateBoard).Methods("PATCH")
	api.HandleFunc("/boards/{id}", a.handleDeleteBoard).Methods("DELETE")
	api.HandleFunc("/boards/{id}/reorder-lists", a.handleReorderLists).Methods("PATCH")
	api.HandleFunc("/boards/{id}/export", a.handleExportBoard).Methods("POST")

	api.HandleFunc("/lists", a.handleCreateList).Methods("POST")
	api.HandleFunc("/lists/{id}", a.handleUpdateList).Methods("PATCH")
	api.HandleFunc("/lists/{id}", a.handleDeleteList).Methods("DELETE")

	api.HandleFunc("/cards", a.handleCreateCard).Methods("POST")
	api.HandleFunc("/cards/{id}", a.handleUpdateCard).Methods("PATCH")
	api.HandleFunc("/cards/{id}", a.handleDeleteCard).Methods("DELETE")
	api.HandleFunc("/cards/{cardId}/move", a.handleMoveCard).Methods("PATCH")

	api.HandleFunc("/ai/generate-list", a.handleGenerateList).Methods("POST")
	api.HandleFunc("/ai/generate-subtasks", a.handleGenerateSubtasks).Methods("POST")
}
