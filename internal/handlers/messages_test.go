package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/branchapp/branch/internal/models"
)

func TestCreateMessage(t *testing.T) {
	env := newTestEnv(t)
	handler := &MessageHandler{Log: env.log}

	conv, _, _ := env.directory.FindOrCreate("alice-id", "bob-id")

	body, _ := json.Marshal(map[string]string{
		"conversationId": conv.ID,
		"senderId":       "alice-id",
		"textContent":    "hello",
	})
	req, _ := http.NewRequest("POST", "/api/messages", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.Create).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusCreated)
	}
	var msg models.Message
	json.NewDecoder(rr.Body).Decode(&msg)
	if msg.TextContent == nil || *msg.TextContent != "hello" {
		t.Errorf("Unexpected text content: %v", msg.TextContent)
	}
	if msg.BranchParentMessageID != nil {
		t.Error("Expected branchParentMessageId to be null")
	}
}

func TestCreateVideoMessage(t *testing.T) {
	env := newTestEnv(t)
	handler := &MessageHandler{Log: env.log}

	conv, _, _ := env.directory.FindOrCreate("alice-id", "bob-id")

	body, _ := json.Marshal(map[string]string{
		"conversationId": conv.ID,
		"senderId":       "bob-id",
		"videoUrl":       "/videos/x.webm",
	})
	req, _ := http.NewRequest("POST", "/api/messages", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.Create).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusCreated)
	}
	var msg models.Message
	json.NewDecoder(rr.Body).Decode(&msg)
	if msg.VideoURL == nil || *msg.VideoURL != "/videos/x.webm" {
		t.Errorf("Unexpected videoUrl: %v", msg.VideoURL)
	}
}

func TestCreateMessageUnknownConversation(t *testing.T) {
	env := newTestEnv(t)
	handler := &MessageHandler{Log: env.log}

	body, _ := json.Marshal(map[string]string{
		"conversationId": "missing",
		"senderId":       "alice-id",
		"textContent":    "hello",
	})
	req, _ := http.NewRequest("POST", "/api/messages", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.Create).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusNotFound)
	}
}

func TestCreateMessageBadRequest(t *testing.T) {
	env := newTestEnv(t)
	handler := &MessageHandler{Log: env.log}

	conv, _, _ := env.directory.FindOrCreate("alice-id", "bob-id")

	bodies := []map[string]string{
		{"senderId": "alice-id", "textContent": "hello"},
		{"conversationId": conv.ID, "textContent": "hello"},
		// Both content fields absent
		{"conversationId": conv.ID, "senderId": "alice-id"},
	}
	for _, m := range bodies {
		body, _ := json.Marshal(m)
		req, _ := http.NewRequest("POST", "/api/messages", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		http.HandlerFunc(handler.Create).ServeHTTP(rr, req)

		if status := rr.Code; status != http.StatusBadRequest {
			t.Errorf("body %v: got status %v want %v", m, status, http.StatusBadRequest)
		}
	}
}
