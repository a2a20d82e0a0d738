package create

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, sweet models.Sweet) (*models.Sweet, error) {
	args := m.Called(ctx, sweet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success with string price",
			body: `{"name":"Gummy Bears","category":"gummies","price":"2.5","quantity":10}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(s models.Sweet) bool {
					return s.Name == "Gummy Bears" && s.Category == "gummies" &&
						s.Price.String() == "2.50" && s.Quantity == 10 && s.Description == nil
				})).Return(&models.Sweet{ID: "new-id", Name: "Gummy Bears"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"new-id"`,
		},
		{
			name: "numeric price is accepted",
			body: `{"name":"Mint","category":"mints","price":1,"quantity":0,"description":"fresh"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(s models.Sweet) bool {
					return s.Price.String() == "1.00" && s.Description != nil && *s.Description == "fresh"
				})).Return(&models.Sweet{ID: "m1", Name: "Mint"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"m1"`,
		},
		{
			name:           "missing name",
			body:           `{"category":"gummies","price":"2.50","quantity":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Name is required"}`,
		},
		{
			name:           "bad price format",
			body:           `{"name":"Fudge","category":"caramels","price":"2.505","quantity":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid price format"}`,
		},
		{
			name:           "price wider than the price column",
			body:           `{"name":"Fudge","category":"caramels","price":"123456789.00","quantity":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid price format"}`,
		},
		{
			name:           "quantity above integer column",
			body:           `{"name":"Fudge","category":"caramels","price":"1","quantity":2147483648}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Quantity must be at most 2147483647"}`,
		},
		{
			name: "value out of range in storage",
			body: `{"name":"Fudge","category":"caramels","price":"1","quantity":1}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, storage.ErrOutOfRange)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Value is out of range"}`,
		},
		{
			name:           "missing price",
			body:           `{"name":"Fudge","category":"caramels","quantity":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Price is required"}`,
		},
		{
			name:           "negative quantity",
			body:           `{"name":"Fudge","category":"caramels","price":"1","quantity":-2}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Quantity must be non-negative"}`,
		},
		{
			name:           "non integer quantity",
			body:           `{"name":"Fudge","category":"caramels","price":"1","quantity":"lots"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Quantity must be an integer"}`,
		},
		{
			name:           "unknown category",
			body:           `{"name":"Fudge","category":"cakes","price":"1","quantity":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Category must be one of: chocolates, gummies, hard_candies, lollipops, caramels, jellies, licorice, mints"}`,
		},
		{
			name: "service error",
			body: `{"name":"Fudge","category":"caramels","price":"1","quantity":1}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
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
			req := httptest.NewRequest(http.MethodPost, "/sweets", bytes.NewBufferString(tt.body))
			New(sl.NewDiscardLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
