package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/branchapp/branch/internal/messagelog"
	"github.com/rs/zerolog/log"
)

type MessageHandler struct {
	Log *messagelog.Service
}

type createMessageRequest struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	TextContent    string `json:"textContent"`
	VideoURL       string `json:"videoUrl"`
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.ConversationID == "" || req.SenderID == "" {
		writeError(w, http.StatusBadRequest, "conversationId and senderId are required.")
		return
	}

	msg, err := h.Log.Append(req.ConversationID, req.SenderID, req.TextContent, req.VideoURL)
	if err != nil {
		switch {
		case errors.Is(err, messagelog.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "A message needs textContent or a videoUrl.")
		case errors.Is(err, messagelog.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "Conversation not found.")
		default:
			log.Error().Err(err).Msg("append message failed")
			writeError(w, http.StatusInternalServerError, "Server error.")
		}
		return
	}

	log.Info().
		Str("conversation_id", msg.ConversationID).
		Str("sender_id", msg.SenderID).
		Msg("message sent")
	writeJSON(w, http.StatusCreated, msg)
}
