package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Created(c, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "stock conflict",
			err:        shared.ErrStockConflict,
			wantStatus: http.StatusConflict,
			wantCode:   "STOCK_CONFLICT",
		},
		{
			name: "insufficient stock",
			err: inventory.NewInsufficientStockError(
				uuid.New(), decimal.NewFromInt(10), decimal.NewFromInt(4)),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestParseID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	want := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: want.String()}}

	got, ok := parseID(c)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = parseID(c)
	assert.False(t, ok)
}

func TestBindListRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?page=3&page_size=50&order_by=name&order_dir=asc", nil)

	filter, err := bindListRequest(c)
	require.NoError(t, err)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.PageSize)
	assert.Equal(t, "name", filter.OrderBy)
	assert.Equal(t, "asc", filter.OrderDir)

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest("GET", "/", nil)

	filter, err = bindListRequest(c2)
	require.NoError(t, err)
	assert.Equal(t, shared.DefaultFilter().Page, filter.Page)
	assert.Equal(t, shared.DefaultFilter().PageSize, filter.PageSize)
}
