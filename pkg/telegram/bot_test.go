package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessage(t *testing.T) {
	var got SendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(APIResponse{OK: true})
	}))
	defer srv.Close()

	b := NewBot("test-token")
	b.SetAPIURL(srv.URL)

	if err := b.SendMessage(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if got.ChatID != 42 || got.Text != "hello" {
		t.Errorf("payload = %+v", got)
	}
}

func TestSendPhoto(t *testing.T) {
	var got SendPhotoRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sendPhoto" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(APIResponse{OK: true})
	}))
	defer srv.Close()

	b := NewBot("test-token")
	b.SetAPIURL(srv.URL)

	if err := b.SendPhoto(context.Background(), 42, "https://img.example/soup.jpg", "Tomato Soup"); err != nil {
		t.Fatalf("SendPhoto: %v", err)
	}
	if got.Photo != "https://img.example/soup.jpg" || got.Caption != "Tomato Soup" {
		t.Errorf("payload = %+v", got)
	}
}

func TestAPIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(APIResponse{OK: false, Description: "chat not found"})
	}))
	defer srv.Close()

	b := NewBot("test-token")
	b.SetAPIURL(srv.URL)

	if err := b.SendMessage(context.Background(), 1, "hi"); err == nil {
		t.Fatal("expected error for ok=false envelope")
	}
}

func TestHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"too many requests"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	b := NewBot("test-token")
	b.SetAPIURL(srv.URL)

	if err := b.SetWebhook(context.Background(), "https://example.com/webhook"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
