package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/branchapp/branch/internal/auth"
	"github.com/branchapp/branch/internal/config"
	"github.com/branchapp/branch/internal/directory"
	"github.com/branchapp/branch/internal/handlers"
	"github.com/branchapp/branch/internal/identity"
	"github.com/branchapp/branch/internal/logging"
	"github.com/branchapp/branch/internal/media"
	"github.com/branchapp/branch/internal/messagelog"
	"github.com/branchapp/branch/internal/middleware"
	"github.com/branchapp/branch/internal/store/jsonstore"
	"github.com/branchapp/branch/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	store, err := jsonstore.New(cfg.StorageDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.StorageDir).Msg("open storage")
	}
	mediaStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.MediaDir).Msg("open media storage")
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	tokens := auth.NewManager(cfg.TokenSecret, cfg.TokenTTL)
	identitySvc := identity.New(store, tokens)
	directorySvc := directory.New(store)
	messageLog := messagelog.New(store, hub)

	authHandler := &handlers.AuthHandler{Identity: identitySvc}
	convHandler := &handlers.ConversationHandler{Directory: directorySvc, Log: messageLog}
	msgHandler := &handlers.MessageHandler{Log: messageLog}
	uploadHandler := &handlers.UploadHandler{Media: mediaStore}

	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger(logger))

	// API Endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/conversations", convHandler.FindOrCreate).Methods("POST")
	r.HandleFunc("/api/conversations", convHandler.List).Methods("GET")
	r.HandleFunc("/api/conversations/{id}/messages", convHandler.Messages).Methods("GET")
	r.HandleFunc("/api/messages", msgHandler.Create).Methods("POST")
	r.HandleFunc("/api/upload/video", uploadHandler.UploadVideo).Methods("POST")

	// Uploaded clips
	r.HandleFunc("/videos/{filename}", uploadHandler.ServeVideo).Methods("GET")

	// WebSocket endpoint, the only authenticated surface
	r.Handle("/ws", middleware.RequireToken(tokens, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, w, r, middleware.UserID(r.Context()))
	})))

	logger.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
