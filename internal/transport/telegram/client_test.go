package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetUpdatesAdvancesOffset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/getUpdates") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"ok":true,"result":[
			{"update_id":10,"message":{"message_id":1,"chat":{"id":5},"from":{"id":5},"text":"hi"}},
			{"update_id":11,"message":{"message_id":2,"chat":{"id":5},"from":{"id":5},"text":"yo"}}
		]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "tok")
	updates, next, err := client.GetUpdates(context.Background(), 0, time.Second)
	if err != nil {
		t.Fatalf("get updates: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if next != 12 {
		t.Fatalf("expected next offset 12, got %d", next)
	}
}

func TestSendMessageCarriesMarkup(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "tok")
	markup := ReplyKeyboardMarkup{
		Keyboard:       [][]KeyboardButton{{{Text: "📊 Statut"}}},
		ResizeKeyboard: true,
	}
	if err := client.SendMessage(context.Background(), 5, "salut", markup); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if got["parse_mode"] != "MarkdownV2" {
		t.Fatalf("expected MarkdownV2 parse mode, got %v", got["parse_mode"])
	}
	raw, _ := json.Marshal(got["reply_markup"])
	if !strings.Contains(string(raw), "📊 Statut") {
		t.Fatalf("expected keyboard in markup, got %s", raw)
	}
}

func TestSendMessageFallsBackOnParseError(t *testing.T) {
	var modes []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		mode, _ := req["parse_mode"].(string)
		modes = append(modes, mode)
		if mode == "MarkdownV2" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "tok")
	if err := client.SendMessage(context.Background(), 5, "broken *markup", nil); err != nil {
		t.Fatalf("expected plain-text fallback to succeed, got %v", err)
	}
	if len(modes) != 2 || modes[0] != "MarkdownV2" || modes[1] != "" {
		t.Fatalf("expected MarkdownV2 then plain retry, got %v", modes)
	}
}

func TestSendMessageSurfacesAPIRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "tok")
	err := client.SendMessage(context.Background(), 5, "salut", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "blocked") {
		t.Fatalf("expected API description in error, got %v", err)
	}
}

func TestSendDocumentUploadsMultipart(t *testing.T) {
	var chatID, caption, filename, content string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		chatID = r.FormValue("chat_id")
		caption = r.FormValue("caption")
		file, header, err := r.FormFile("document")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			filename = header.Filename
			raw, _ := io.ReadAll(file)
			content = string(raw)
			_ = file.Close()
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "tok")
	err := client.SendDocument(context.Background(), 42, "export_20250101_000000.txt", []byte("+33611111111\n"), "📦 1 numéros extraits.")
	if err != nil {
		t.Fatalf("send document: %v", err)
	}
	if chatID != "42" {
		t.Fatalf("expected chat_id 42, got %q", chatID)
	}
	if filename != "export_20250101_000000.txt" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if content != "+33611111111\n" {
		t.Fatalf("unexpected content %q", content)
	}
	if !strings.Contains(caption, "extraits") {
		t.Fatalf("unexpected caption %q", caption)
	}
}

func TestGetMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottok/getMe" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"ok":true,"result":{"id":99,"is_bot":true,"username":"annuaire_bot"}}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "tok")
	me, err := client.GetMe(context.Background())
	if err != nil {
		t.Fatalf("get me: %v", err)
	}
	if me.ID != 99 || me.Username != "annuaire_bot" {
		t.Fatalf("unexpected account %+v", me)
	}
}
