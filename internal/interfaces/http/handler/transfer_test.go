package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	stockapp "github.com/stockflow/backend/internal/application/stock"
	"github.com/stretchr/testify/assert"
)

func setupTransferRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	NewTransferHandler(&stockapp.TransferService{}).RegisterRoutes(api)
	return router
}

func TestTransferHandler_CreateOutgoing_InvalidBody(t *testing.T) {
	router := setupTransferRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/transfers/outgoing", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestTransferHandler_GetByID_InvalidID(t *testing.T) {
	router := setupTransferRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/transfers/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid transfer ID")
}

func TestTransferHandler_List_InvalidPagination(t *testing.T) {
	router := setupTransferRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/transfers?page_size=5000", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransferHandler_Cancel_InvalidID(t *testing.T) {
	router := setupTransferRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/transfers/xyz/cancel", strings.NewReader(`{"reason":"test"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
