package update

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

const sweetID = "9b2d6f3e-4a1c-4f3b-8d2e-1a2b3c4d5e6f"

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "price only",
			id:   sweetID,
			body: `{"price":"3.75"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, sweetID, mock.MatchedBy(func(p models.SweetPatch) bool {
					return p.Price != nil && p.Price.String() == "3.75" &&
						p.Name == nil && p.Quantity == nil && p.Category == nil
				})).Return(&models.Sweet{ID: sweetID, Name: "Toffee", Price: money.MustParse("3.75")}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"price":"3.75"`,
		},
		{
			name: "quantity overwrite to zero",
			id:   sweetID,
			body: `{"quantity":0}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, sweetID, mock.MatchedBy(func(p models.SweetPatch) bool {
					return p.Quantity != nil && *p.Quantity == 0
				})).Return(&models.Sweet{ID: sweetID, Quantity: 0}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"quantity":0`,
		},
		{
			name: "explicit null clears description",
			id:   sweetID,
			body: `{"description":null,"name":"Toffee"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, sweetID, mock.MatchedBy(func(p models.SweetPatch) bool {
					return p.ClearDescription && p.Description == nil && !p.ClearImageURL && p.ImageURL == nil
				})).Return(&models.Sweet{ID: sweetID, Name: "Toffee"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"description":null`,
		},
		{
			name: "absent fields are not cleared",
			id:   sweetID,
			body: `{"imageUrl":"https://img/t.png"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, sweetID, mock.MatchedBy(func(p models.SweetPatch) bool {
					return !p.ClearDescription && !p.ClearImageURL &&
						p.ImageURL != nil && *p.ImageURL == "https://img/t.png"
				})).Return(&models.Sweet{ID: sweetID}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"` + sweetID + `"`,
		},
		{
			name:           "quantity above integer column",
			id:             sweetID,
			body:           `{"quantity":2147483648}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Quantity must be at most 2147483647"}`,
		},
		{
			name: "value out of range in storage",
			id:   sweetID,
			body: `{"quantity":5}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, sweetID, mock.Anything).Return(nil, storage.ErrOutOfRange)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Value is out of range"}`,
		},
		{
			name:           "negative quantity",
			id:             sweetID,
			body:           `{"quantity":-1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Quantity must be non-negative"}`,
		},
		{
			name:           "bad price",
			id:             sweetID,
			body:           `{"price":"free"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid price format"}`,
		},
		{
			name: "not found",
			id:   sweetID,
			body: `{"name":"Ghost"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, sweetID, mock.Anything).Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Sweet not found"}`,
		},
		{
			name:           "malformed id",
			id:             "not-a-uuid",
			body:           `{"name":"Ghost"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Sweet not found"}`,
		},
		{
			name: "service error",
			id:   sweetID,
			body: `{"name":"Toffee"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, sweetID, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPut, "/sweets/"+tt.id, bytes.NewBufferString(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			New(sl.NewDiscardLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
