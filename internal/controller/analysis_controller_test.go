package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lumo_backend/internal/model"
	"lumo_backend/internal/service"
	"lumo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type stubHistory struct {
	turns []model.ChatTurn
	err   error
}

func (s *stubHistory) FullHistory(userID uint) ([]model.ChatTurn, error) {
	return s.turns, s.err
}

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func (s *stubGenerator) Configured() bool { return true }

func analysisTestRouter(c *AnalysisController) *gin.Engine {
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set("user", &util.Claims{UserID: 7, Role: model.Student})
	})
	router.GET("/api/analysis/swot", c.Swot)
	return router
}

// The SWOT endpoint never fails: broken pipelines still answer 200
// with a fallback payload.
func TestAnalysisControllerSwot(t *testing.T) {
	cases := []struct {
		name     string
		history  *stubHistory
		gen      *stubGenerator
		wantPart string
	}{
		{
			"happy path",
			&stubHistory{turns: []model.ChatTurn{{UserInput: "hi", BotReply: "hello"}}},
			&stubGenerator{reply: `['Direct answers.', 'Short on detail.', 75, 30, 70]`},
			"Direct answers.",
		},
		{
			"no history",
			&stubHistory{},
			&stubGenerator{},
			"No chat history to analyze.",
		},
		{
			"history failure",
			&stubHistory{err: errors.New("db down")},
			&stubGenerator{},
			"Error analyzing chat.",
		},
		{
			"model failure",
			&stubHistory{turns: []model.ChatTurn{{UserInput: "hi", BotReply: "hello"}}},
			&stubGenerator{err: errors.New("quota")},
			"Error analyzing chat.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := NewAnalysisController(service.NewAnalysisService(tc.history, tc.gen))

			req := httptest.NewRequest(http.MethodGet, "/api/analysis/swot", nil)
			w := httptest.NewRecorder()
			analysisTestRouter(ctrl).ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantPart) {
				t.Errorf("body %s missing %q", w.Body.String(), tc.wantPart)
			}
		})
	}
}
