package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/branchapp/branch/internal/directory"
	"github.com/branchapp/branch/internal/messagelog"
	"github.com/branchapp/branch/internal/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type ConversationHandler struct {
	Directory *directory.Service
	Log       *messagelog.Service
}

type findOrCreateRequest struct {
	UserID1 string `json:"userId1"`
	UserID2 string `json:"userId2"`
}

// FindOrCreate answers 200 with the existing conversation or 201 with a
// freshly created one; (A, B) and (B, A) resolve to the same record.
func (h *ConversationHandler) FindOrCreate(w http.ResponseWriter, r *http.Request) {
	var req findOrCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.UserID1 == "" || req.UserID2 == "" {
		writeError(w, http.StatusBadRequest, "Both userId1 and userId2 are required.")
		return
	}

	conv, created, err := h.Directory.FindOrCreate(req.UserID1, req.UserID2)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidParticipants) {
			writeError(w, http.StatusBadRequest, "A conversation needs two distinct participants.")
			return
		}
		log.Error().Err(err).Msg("find-or-create conversation failed")
		writeError(w, http.StatusInternalServerError, "Server error.")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		log.Info().Str("conversation_id", conv.ID).Msg("conversation created")
	}
	writeJSON(w, status, conv)
}

func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId query parameter is required.")
		return
	}

	convs, err := h.Directory.ListFor(userID)
	if err != nil {
		log.Error().Err(err).Msg("list conversations failed")
		writeError(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	writeJSON(w, http.StatusOK, convs)
}

// Messages returns the conversation's messages in ascending timestamp
// order. An unknown conversation id yields an empty list, not a 404.
func (h *ConversationHandler) Messages(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["id"]

	msgs, err := h.Log.ListFor(conversationID)
	if err != nil {
		log.Error().Err(err).Msg("list messages failed")
		writeError(w, http.StatusInternalServerError, "Server error.")
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
