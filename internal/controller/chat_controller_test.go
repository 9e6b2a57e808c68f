package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lumo_backend/internal/model"
	"lumo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResponder struct {
	reply string
	err   error
}

func (s *stubResponder) Respond(ctx context.Context, userID uint, year model.StudyYear, level model.CoachLevel, message string) (string, error) {
	return s.reply, s.err
}

type stubWindow struct {
	turns    []model.ChatTurn
	resetFor []uint
}

func (s *stubWindow) Hydrate(ctx context.Context, userID uint) ([]model.ChatTurn, error) {
	return s.turns, nil
}

func (s *stubWindow) Reset(ctx context.Context, userID uint) error {
	s.resetFor = append(s.resetFor, userID)
	return nil
}

type stubProfiles struct {
	user *model.User
}

func (s *stubProfiles) GetProfile(userID uint) (*model.User, error) {
	if s.user == nil {
		return nil, errors.New("not found")
	}
	return s.user, nil
}

func chatTestRouter(c *ChatController, authed bool) *gin.Engine {
	router := gin.New()
	if authed {
		router.Use(func(ctx *gin.Context) {
			ctx.Set("user", &util.Claims{UserID: 42, Role: model.Student})
		})
	}
	router.POST("/api/chat", c.SendMessage)
	router.GET("/api/chat/history", c.History)
	router.POST("/api/logout", c.Logout)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestChatControllerSendMessage(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		ctrl := NewChatController(&stubResponder{reply: "Tell me about yourself."}, &stubWindow{}, &stubProfiles{})
		w := postJSON(t, chatTestRouter(ctrl, true), "/api/chat", `{"message": "hi"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		body := decodeBody(t, w)
		if body["status"] != "success" {
			t.Errorf("status field = %v", body["status"])
		}
		if body["bot_response"] != "Tell me about yourself." {
			t.Errorf("bot_response = %v", body["bot_response"])
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := NewChatController(&stubResponder{}, &stubWindow{}, &stubProfiles{})
		w := postJSON(t, chatTestRouter(ctrl, true), "/api/chat", `{"message": `)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if decodeBody(t, w)["error"] != "Invalid JSON format" {
			t.Errorf("error = %v", decodeBody(t, w)["error"])
		}
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name      string
			err       error
			wantCode  int
			wantError string
		}{
			{"empty message", util.ErrEmptyMessage, http.StatusBadRequest, "Message cannot be empty"},
			{"missing key", util.ErrMisconfigured, http.StatusInternalServerError, "Server misconfiguration: API Key missing."},
			{"model down", util.ErrServiceUnavailable, http.StatusServiceUnavailable, "AI service temporarily unavailable. Please try again."},
			{"unexpected", errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := NewChatController(&stubResponder{err: tc.err}, &stubWindow{}, &stubProfiles{})
				w := postJSON(t, chatTestRouter(ctrl, true), "/api/chat", `{"message": "x"}`)

				if w.Code != tc.wantCode {
					t.Fatalf("status = %d, want %d", w.Code, tc.wantCode)
				}
				if got := decodeBody(t, w)["error"]; got != tc.wantError {
					t.Errorf("error = %v, want %q", got, tc.wantError)
				}
			})
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := NewChatController(&stubResponder{}, &stubWindow{}, &stubProfiles{})
		w := postJSON(t, chatTestRouter(ctrl, false), "/api/chat", `{"message": "hi"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})
}

func TestChatControllerLogout(t *testing.T) {
	window := &stubWindow{}
	ctrl := NewChatController(&stubResponder{}, window, &stubProfiles{})
	w := postJSON(t, chatTestRouter(ctrl, true), "/api/logout", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(window.resetFor) != 1 || window.resetFor[0] != 42 {
		t.Errorf("resetFor = %v, want [42]", window.resetFor)
	}
}

func TestChatControllerHistory(t *testing.T) {
	window := &stubWindow{turns: []model.ChatTurn{{UserInput: "hi", BotReply: "hello"}}}
	ctrl := NewChatController(&stubResponder{}, window, &stubProfiles{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	w := httptest.NewRecorder()
	chatTestRouter(ctrl, true).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"hi"`) {
		t.Errorf("body missing turn content: %s", w.Body.String())
	}
}
