package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	financeapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bankService = mockCRUDService[financeapp.BankResponse, financeapp.CreateBankRequest, financeapp.UpdateBankRequest]

type mockTransactionLister struct {
	mock.Mock
}

func (m *mockTransactionLister) ListByBank(ctx context.Context, bankID uuid.UUID, filter shared.Filter) (*shared.Paginated[financeapp.TransactionResponse], error) {
	args := m.Called(ctx, bankID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[financeapp.TransactionResponse]), args.Error(1)
}

func newBankRouter(banks *bankService, txs *mockTransactionLister) *gin.Engine {
	h := NewBankHandler(banks, txs)
	r := gin.New()
	r.GET("/banks", h.List)
	r.POST("/banks", h.Create)
	r.GET("/banks/:id", h.Get)
	r.PUT("/banks/:id", h.Update)
	r.DELETE("/banks/:id", h.Delete)
	r.GET("/banks/:id/transactions", h.ListTransactions)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp
}

func TestCRUDHandler_List(t *testing.T) {
	banks := new(bankService)
	r := newBankRouter(banks, new(mockTransactionLister))

	page := &shared.Paginated[financeapp.BankResponse]{
		Items:    []financeapp.BankResponse{{ID: uuid.New(), Name: "BICEC", Code: "BICEC"}},
		Total:    11,
		Page:     2,
		PageSize: 5,
	}
	banks.On("List", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 &&
			f.PageSize == 5 &&
			f.OrderBy == "name" &&
			f.OrderDir == "asc" &&
			f.Search == "bic" &&
			f.Filters["status"] == "active" &&
			len(f.Filters) == 1
	})).Return(page, nil)

	w := doJSON(r, http.MethodGet, "/banks?page=2&limit=5&sort_by=name&sort_order=asc&search=+bic+&status=active&unknown=x", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 5, resp.Pagination.Limit)
	assert.Equal(t, int64(11), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Len(t, resp.Data, 1)
	banks.AssertExpectations(t)
}

func TestCRUDHandler_ListDefaults(t *testing.T) {
	banks := new(bankService)
	r := newBankRouter(banks, new(mockTransactionLister))

	banks.On("List", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == shared.MaxPageSize && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return(&shared.Paginated[financeapp.BankResponse]{Items: []financeapp.BankResponse{}, Page: 1, PageSize: 100}, nil)

	w := doJSON(r, http.MethodGet, "/banks?page=abc&page_size=500&sort_order=sideways", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
	banks.AssertExpectations(t)
}

func TestCRUDHandler_Get(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		banks := new(bankService)
		w := doJSON(newBankRouter(banks, nil), http.MethodGet, "/banks/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInvalidID, resp.Code)
		assert.Equal(t, "id", resp.Field)
		banks.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown id answers 400 not found", func(t *testing.T) {
		banks := new(bankService)
		id := uuid.New()
		banks.On("GetByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("Bank"))

		w := doJSON(newBankRouter(banks, nil), http.MethodGet, "/banks/"+id.String(), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Code)
		assert.Equal(t, "Bank not found", resp.Error)
	})

	t.Run("found", func(t *testing.T) {
		banks := new(bankService)
		id := uuid.New()
		banks.On("GetByID", mock.Anything, id).Return(&financeapp.BankResponse{ID: id, Name: "Afriland"}, nil)

		w := doJSON(newBankRouter(banks, nil), http.MethodGet, "/banks/"+id.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Afriland"`)
	})
}

func TestCRUDHandler_Create(t *testing.T) {
	t.Run("missing required field", func(t *testing.T) {
		banks := new(bankService)
		w := doJSON(newBankRouter(banks, nil), http.MethodPost, "/banks", map[string]any{"code": "X"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Code)
		assert.Equal(t, "name", resp.Field)
		assert.Equal(t, "name is required", resp.Error)
		banks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid enum", func(t *testing.T) {
		banks := new(bankService)
		w := doJSON(newBankRouter(banks, nil), http.MethodPost, "/banks", map[string]any{
			"name": "BICEC", "code": "BICEC", "accountNumber": "1", "status": "frozen",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "status must be one of: active, inactive, closed", resp.Error)
	})

	t.Run("malformed json", func(t *testing.T) {
		banks := new(bankService)
		w := doJSON(newBankRouter(banks, nil), http.MethodPost, "/banks", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decodeError(t, w).Code)
	})

	t.Run("duplicate code", func(t *testing.T) {
		banks := new(bankService)
		banks.On("Create", mock.Anything, mock.AnythingOfType("finance.CreateBankRequest")).
			Return(nil, shared.NewAlreadyExistsError("Bank", "code", "BICEC"))

		w := doJSON(newBankRouter(banks, nil), http.MethodPost, "/banks", map[string]any{
			"name": "BICEC", "code": "BICEC", "accountNumber": "1",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeConflict, resp.Code)
		assert.Equal(t, "code", resp.Field)
	})

	t.Run("created", func(t *testing.T) {
		banks := new(bankService)
		id := uuid.New()
		banks.On("Create", mock.Anything, mock.MatchedBy(func(req financeapp.CreateBankRequest) bool {
			return req.Name == "BICEC" && req.AccountNumber == "001"
		})).Return(&financeapp.BankResponse{ID: id, Name: "BICEC"}, nil)

		w := doJSON(newBankRouter(banks, nil), http.MethodPost, "/banks", map[string]any{
			"name": "BICEC", "code": "BICEC", "accountNumber": "001",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), id.String())
	})

	t.Run("unexpected error surfaces message", func(t *testing.T) {
		banks := new(bankService)
		banks.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		w := doJSON(newBankRouter(banks, nil), http.MethodPost, "/banks", map[string]any{
			"name": "BICEC", "code": "BICEC", "accountNumber": "001",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Code)
		assert.Equal(t, "connection refused", resp.Error)
	})
}

func TestCRUDHandler_Update(t *testing.T) {
	banks := new(bankService)
	id := uuid.New()
	banks.On("Update", mock.Anything, id, mock.MatchedBy(func(req financeapp.UpdateBankRequest) bool {
		return req.Name != nil && *req.Name == "Renamed" && req.Code == nil
	})).Return(&financeapp.BankResponse{ID: id, Name: "Renamed"}, nil)

	w := doJSON(newBankRouter(banks, nil), http.MethodPut, "/banks/"+id.String(), map[string]any{"name": "Renamed"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Renamed"`)
	banks.AssertExpectations(t)
}

func TestCRUDHandler_Delete(t *testing.T) {
	banks := new(bankService)
	id := uuid.New()
	banks.On("Delete", mock.Anything, id).Return(nil)

	w := doJSON(newBankRouter(banks, nil), http.MethodDelete, "/banks/"+id.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                `json:"success"`
		Data    dto.DeletedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, id.String(), resp.Data.ID)
	assert.True(t, resp.Data.Deleted)
}

func TestBankHandler_ListTransactions(t *testing.T) {
	txs := new(mockTransactionLister)
	bankID := uuid.New()
	txs.On("ListByBank", mock.Anything, bankID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["type"] == "deposit"
	})).Return(&shared.Paginated[financeapp.TransactionResponse]{
		Items:    []financeapp.TransactionResponse{{ID: uuid.New(), BankID: bankID}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}, nil)

	w := doJSON(newBankRouter(new(bankService), txs), http.MethodGet, "/banks/"+bankID.String()+"/transactions?type=deposit", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	txs.AssertExpectations(t)
}

func TestParseListFilter(t *testing.T) {
	params := []FilterParam{
		{Name: "bankId", Kind: FilterUUID},
		{Name: "isActive", Kind: FilterBool},
		{Name: "dateFrom", Kind: FilterDate},
		{Name: "dateTo", Kind: FilterDateEnd},
		{Name: "clientName"},
	}
	bankID := uuid.New()

	t.Run("typed values", func(t *testing.T) {
		c := queryContext("/x?bankId=" + bankID.String() + "&isActive=false&dateFrom=2024-03-01&dateTo=2024-03-31&client_name=Acme")

		filter, detail := parseListFilter(c, params)

		require.Nil(t, detail)
		assert.Equal(t, bankID, filter.Filters["bankId"])
		assert.Equal(t, false, filter.Filters["isActive"])
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), filter.Filters["dateFrom"])
		end := filter.Filters["dateTo"].(time.Time)
		assert.Equal(t, 31, end.Day())
		assert.Equal(t, 23, end.Hour())
		assert.Equal(t, "Acme", filter.Filters["clientName"])
	})

	t.Run("timestamp end is kept as is", func(t *testing.T) {
		c := queryContext("/x?dateTo=2024-03-31T10:00:00Z")

		filter, detail := parseListFilter(c, params)

		require.Nil(t, detail)
		assert.Equal(t, time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC), filter.Filters["dateTo"])
	})

	tests := []struct {
		query string
		field string
	}{
		{"/x?bankId=nope", "bankId"},
		{"/x?isActive=maybe", "isActive"},
		{"/x?date_from=yesterday", "dateFrom"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.field, func(t *testing.T) {
			_, detail := parseListFilter(queryContext(tt.query), params)

			require.NotNil(t, detail)
			assert.Equal(t, tt.field, detail.Field)
		})
	}
}

func TestCRUDHandler_ListRejectsBadFilter(t *testing.T) {
	txService := new(mockCRUDService[financeapp.TransactionResponse, financeapp.CreateTransactionRequest, financeapp.UpdateTransactionRequest])
	h := NewTransactionHandler(txService)
	r := gin.New()
	r.GET("/bank-transactions", h.List)

	w := doJSON(r, http.MethodGet, "/bank-transactions?bankId=123", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Code)
	assert.Equal(t, "bankId", resp.Field)
	assert.Equal(t, "bankId must be a valid UUID", resp.Error)
	txService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func queryContext(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}
