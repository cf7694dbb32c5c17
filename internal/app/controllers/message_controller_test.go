package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/retrieverhq/retriever-study/internal/app/models"
	"github.com/retrieverhq/retriever-study/internal/app/services"
)

type stubMessageService struct {
	lastGroupID string
	lastLimit   int
}

func (s *stubMessageService) SendMessage(ctx context.Context, groupID, senderID, content string) (*models.Message, error) {
	return &models.Message{GroupID: groupID, SenderID: senderID, Content: content}, nil
}

func (s *stubMessageService) GetHistory(ctx context.Context, groupID string, limit int) ([]*models.Message, error) {
	s.lastGroupID = groupID
	s.lastLimit = limit
	return nil, nil
}

func historyContext(query string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/groups/group-1/messages"+query, nil)
	c.Params = gin.Params{{Key: "id", Value: "group-1"}}
	return c, rec
}

func TestGetMessageHistoryClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"default when missing", "", services.DefaultHistoryLimit},
		{"explicit small limit", "?limit=3", 3},
		{"huge limit falls back", "?limit=1000000", services.DefaultHistoryLimit},
		{"negative limit falls back", "?limit=-1", services.DefaultHistoryLimit},
		{"garbage falls back", "?limit=abc", services.DefaultHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubMessageService{}
			ctrl := NewMessageController(svc)

			c, rec := historyContext(tt.query)
			ctrl.GetMessageHistory(c)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if svc.lastGroupID != "group-1" {
				t.Fatalf("groupID = %q, want %q", svc.lastGroupID, "group-1")
			}
			if svc.lastLimit != tt.want {
				t.Fatalf("limit = %d, want %d", svc.lastLimit, tt.want)
			}
		})
	}
}
