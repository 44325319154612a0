package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", access.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", access.ErrForbidden, http.StatusForbidden},
		{"not visible", services.ErrProjectNotFound, http.StatusNotFound},
		{"assignee outside project", services.ErrInvalidTaskAssignee, http.StatusBadRequest},
		{"duplicate member", services.ErrAlreadyMember, http.StatusConflict},
		{"ai down", services.ErrAIUnavailable, http.StatusServiceUnavailable},
		{"ai prose reply", fmt.Errorf("failed to generate tasks: %w", fmt.Errorf("%w: unparseable response", services.ErrAINoTasksGenerated)), http.StatusUnprocessableEntity},
		{"ai nothing valid", services.ErrAINoValidTasks, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
