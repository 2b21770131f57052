package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/domain/mocks"
	"github.com/relasjon/crm/pkg/logger"
)

const (
	testCustomerID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testUserID     = "11111111-1111-1111-1111-111111111111"
)

func setupCustomerHandlerTest(t *testing.T) (*mocks.MockCustomerService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCustomerService(ctrl)
	mux := http.NewServeMux()
	NewCustomerHandler(svc, logger.NewTestLogger(t)).RegisterRoutes(mux)
	return svc, mux
}

func serve(mux *http.ServeMux, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCustomerHandler_List(t *testing.T) {
	svc, mux := setupCustomerHandlerTest(t)
	svc.EXPECT().
		List(gomock.Any(), domain.ListCustomersParams{
			Page:     2,
			Limit:    50,
			Search:   "acme",
			Status:   domain.CustomerStatusActive,
			MineOnly: true,
		}).
		Return(domain.OK(domain.NewPage([]domain.CustomerWithStats{}, 2, 50, 0)))

	w := serve(mux, http.MethodGet, "/api/customers.list?page=2&limit=50&search=acme&status=active&mine_only=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeResult(t, w)
	assert.Equal(t, true, out["success"])
}

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, mux := setupCustomerHandlerTest(t)
		svc.EXPECT().
			Create(gomock.Any(), &domain.CreateCustomerRequest{Name: "Acme AS"}).
			Return(domain.OK(domain.EntityRef{ID: testCustomerID}))

		w := serve(mux, http.MethodPost, "/api/customers.create", map[string]string{"name": "Acme AS"})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeResult(t, w)["data"].(map[string]interface{})
		assert.Equal(t, testCustomerID, data["id"])
	})

	t.Run("validation error", func(t *testing.T) {
		svc, mux := setupCustomerHandlerTest(t)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(domain.Fail[domain.EntityRef](domain.ErrorPresenter{}, domain.NewValidationError("name", "name is required")))

		w := serve(mux, http.MethodPost, "/api/customers.create", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		out := decodeResult(t, w)
		assert.Equal(t, "VALIDATION_ERROR", out["code"])
		assert.Equal(t, "name", out["field"])
	})

	t.Run("malformed body", func(t *testing.T) {
		_, mux := setupCustomerHandlerTest(t)
		w := serve(mux, http.MethodPost, "/api/customers.create", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		_, mux := setupCustomerHandlerTest(t)
		w := serve(mux, http.MethodGet, "/api/customers.create", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestCustomerHandler_Update(t *testing.T) {
	t.Run("absent keys stay unset", func(t *testing.T) {
		svc, mux := setupCustomerHandlerTest(t)
		svc.EXPECT().
			Update(gomock.Any(), testCustomerID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, p *domain.CustomerPatch) domain.Result[domain.EntityRef] {
				assert.True(t, p.Name.Set)
				assert.Equal(t, "Acme Corp", p.Name.Value)
				assert.True(t, p.AssignedTo.Set)
				assert.True(t, p.AssignedTo.Null)
				assert.False(t, p.Industry.Set)
				return domain.OK(domain.EntityRef{ID: testCustomerID})
			})

		w := serve(mux, http.MethodPost, "/api/customers.update",
			`{"id":"`+testCustomerID+`","name":"Acme Corp","assigned_to":null}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc, mux := setupCustomerHandlerTest(t)
		svc.EXPECT().
			Update(gomock.Any(), testCustomerID, gomock.Any()).
			Return(domain.Fail[domain.EntityRef](domain.ErrorPresenter{Locale: "en"}, domain.NewForbiddenError("customer")))

		w := serve(mux, http.MethodPost, "/api/customers.update", `{"id":"`+testCustomerID+`","name":"x"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You do not have permission to perform this action.", decodeResult(t, w)["error"])
	})

	t.Run("missing id", func(t *testing.T) {
		_, mux := setupCustomerHandlerTest(t)
		w := serve(mux, http.MethodPost, "/api/customers.update", `{"name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_GetAndDelete(t *testing.T) {
	svc, mux := setupCustomerHandlerTest(t)

	svc.EXPECT().GetWithStats(gomock.Any(), testCustomerID).
		Return(domain.OK(&domain.CustomerWithStats{Customer: domain.Customer{ID: testCustomerID}, ContactCount: 2}))
	w := serve(mux, http.MethodGet, "/api/customers.detail?id="+testCustomerID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.EXPECT().GetByID(gomock.Any(), testCustomerID).
		Return(domain.Fail[*domain.Customer](domain.ErrorPresenter{}, domain.NewNotFoundError("customer")))
	w = serve(mux, http.MethodGet, "/api/customers.get?id="+testCustomerID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(mux, http.MethodGet, "/api/customers.get", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.EXPECT().Delete(gomock.Any(), testCustomerID).Return(domain.OK(domain.EntityRef{ID: testCustomerID}))
	w = serve(mux, http.MethodPost, "/api/customers.delete", map[string]string{"id": testCustomerID})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := map[domain.ErrorCode]int{
		domain.ErrCodeUnauthorized: http.StatusUnauthorized,
		domain.ErrCodeForbidden:    http.StatusForbidden,
		domain.ErrCodeNotFound:     http.StatusNotFound,
		domain.ErrCodeValidation:   http.StatusBadRequest,
		domain.ErrCodeConflict:     http.StatusConflict,
		domain.ErrCodeDatabase:     http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, StatusFor(code), string(code))
	}
}
