package list

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) List(ctx context.Context) ([]*models.Sweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sweet), args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "catalog",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return([]*models.Sweet{
					{ID: "s1", Name: "Toffee", Category: "caramels", Price: money.MustParse("2.5"), Quantity: 4},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[{"id":"s1","name":"Toffee","description":null,"category":"caramels",
				"price":"2.50","quantity":4,"imageUrl":null}]`,
		},
		{
			name: "empty catalog is an empty array",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return([]*models.Sweet{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "service error",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			New(sl.NewDiscardLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sweets", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
