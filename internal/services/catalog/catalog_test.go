package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
	"github.com/magabrotheeeer/sweet-shop/internal/lib/sl"
	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListSweets(ctx context.Context) ([]*models.Sweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sweet), args.Error(1)
}

func (m *RepoMock) GetSweet(ctx context.Context, id string) (*models.Sweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

func (m *RepoMock) SearchSweets(ctx context.Context, filter models.SearchFilter) ([]*models.Sweet, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sweet), args.Error(1)
}

func (m *RepoMock) CreateSweet(ctx context.Context, sweet models.Sweet) (*models.Sweet, error) {
	args := m.Called(ctx, sweet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

func (m *RepoMock) UpdateSweet(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

func (m *RepoMock) DeleteSweet(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		input     models.Sweet
		setupMock func(m *RepoMock)
		wantErr   error
		errMsg    string
	}{
		{
			name:  "success assigns id",
			input: models.Sweet{Name: "Toffee", Category: "caramels", Price: money.MustParse("1.20"), Quantity: 4},
			setupMock: func(m *RepoMock) {
				m.On("CreateSweet", ctx, mock.MatchedBy(func(s models.Sweet) bool {
					return s.ID != "" && s.Name == "Toffee"
				})).Return(&models.Sweet{ID: "new-id", Name: "Toffee"}, nil)
			},
		},
		{
			name:      "empty name",
			input:     models.Sweet{Category: "caramels"},
			setupMock: func(_ *RepoMock) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "unknown category",
			input:     models.Sweet{Name: "Cake", Category: "cakes"},
			setupMock: func(_ *RepoMock) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "negative quantity",
			input:     models.Sweet{Name: "Toffee", Category: "caramels", Quantity: -1},
			setupMock: func(_ *RepoMock) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name:  "repository error",
			input: models.Sweet{Name: "Toffee", Category: "caramels"},
			setupMock: func(m *RepoMock) {
				m.On("CreateSweet", ctx, mock.Anything).Return(nil, errors.New("db error"))
			},
			errMsg: "catalog.Create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &RepoMock{}
			tt.setupMock(repo)
			svc := New(repo, sl.NewDiscardLogger())

			got, err := svc.Create(ctx, tt.input)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, "new-id", got.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	all := []*models.Sweet{{ID: "1", Name: "Toffee"}, {ID: "2", Name: "Mint"}}

	t.Run("empty filter lists catalog", func(t *testing.T) {
		repo := &RepoMock{}
		repo.On("ListSweets", ctx).Return(all, nil)

		got, err := New(repo, sl.NewDiscardLogger()).Search(ctx, models.SearchFilter{})
		require.NoError(t, err)
		assert.Equal(t, all, got)
		repo.AssertNotCalled(t, "SearchSweets", mock.Anything, mock.Anything)
	})

	t.Run("filter is passed through", func(t *testing.T) {
		repo := &RepoMock{}
		minPrice := money.MustParse("1")
		filter := models.SearchFilter{Name: "tof", MinPrice: &minPrice}
		repo.On("SearchSweets", ctx, filter).Return(all[:1], nil)

		got, err := New(repo, sl.NewDiscardLogger()).Search(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		repo := &RepoMock{}
		_, err := New(repo, sl.NewDiscardLogger()).Search(ctx, models.SearchFilter{Category: "cakes"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	current := &models.Sweet{ID: "s1", Name: "Toffee", Quantity: 3}

	tests := []struct {
		name      string
		patch     models.SweetPatch
		setupMock func(m *RepoMock)
		wantErr   error
	}{
		{
			name:  "partial update",
			patch: models.SweetPatch{Name: ptr("Butter Toffee")},
			setupMock: func(m *RepoMock) {
				m.On("UpdateSweet", ctx, "s1", models.SweetPatch{Name: ptr("Butter Toffee")}).
					Return(&models.Sweet{ID: "s1", Name: "Butter Toffee", Quantity: 3}, nil)
			},
		},
		{
			name:  "empty patch returns current",
			patch: models.SweetPatch{},
			setupMock: func(m *RepoMock) {
				m.On("GetSweet", ctx, "s1").Return(current, nil)
			},
		},
		{
			name:  "clearing description is not an empty patch",
			patch: models.SweetPatch{ClearDescription: true},
			setupMock: func(m *RepoMock) {
				m.On("UpdateSweet", ctx, "s1", models.SweetPatch{ClearDescription: true}).
					Return(&models.Sweet{ID: "s1", Name: "Toffee", Quantity: 3}, nil)
			},
		},
		{
			name:      "negative quantity",
			patch:     models.SweetPatch{Quantity: ptr(-5)},
			setupMock: func(_ *RepoMock) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "blank name",
			patch:     models.SweetPatch{Name: ptr("")},
			setupMock: func(_ *RepoMock) {},
			wantErr:   ErrInvalidInput,
		},
		{
			name:  "not found",
			patch: models.SweetPatch{Quantity: ptr(1)},
			setupMock: func(m *RepoMock) {
				m.On("UpdateSweet", ctx, "s1", mock.Anything).Return(nil, storage.ErrNotFound)
			},
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &RepoMock{}
			tt.setupMock(repo)

			got, err := New(repo, sl.NewDiscardLogger()).Update(ctx, "s1", tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "s1", got.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &RepoMock{}
	repo.On("DeleteSweet", ctx, "s1").Return(true, nil)
	repo.On("DeleteSweet", ctx, "s2").Return(false, nil)

	svc := New(repo, sl.NewDiscardLogger())

	deleted, err := svc.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, deleted)
}
