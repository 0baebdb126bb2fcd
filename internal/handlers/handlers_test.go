package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rmedina/segurapp-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError_KindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation maps to 400", services.ErrInvalidAmount, http.StatusBadRequest},
		{"not found maps to 404", services.ErrNotFound, http.StatusNotFound},
		{"conflict maps to 409", services.ErrPolicyFullyPaid, http.StatusConflict},
		{"integrity maps to 422", &services.Error{Kind: services.KindIntegrity, Message: "x"}, http.StatusUnprocessableEntity},
		{"unknown maps to 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestParseListQuery_Defaults(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/policies", nil)

	query := parseListQuery(c)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.PerPage)
	assert.Empty(t, query.Search)
}

func TestParseListQuery_Params(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/policies?page=3&per_page=50&search_term=HAB", nil)

	query := parseListQuery(c)
	assert.Equal(t, 3, query.Page)
	assert.Equal(t, 50, query.PerPage)
	assert.Equal(t, "HAB", query.Search)
}
