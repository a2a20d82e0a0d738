package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/sweet-shop/internal/models"
	"github.com/magabrotheeeer/sweet-shop/internal/storage"
)

const sweetColumns = `id, name, description, category, price, quantity, image_url`

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ListSweets возвращает весь каталог, отсортированный по названию.
func (s *Storage) ListSweets(ctx context.Context) ([]*models.Sweet, error) {
	const op = "storage.ListSweets"

	query := `SELECT ` + sweetColumns + ` FROM sweets ORDER BY name, id`
	res, err := querySweets(ctx, s.DB, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// GetSweet возвращает сладость по ID или storage.ErrNotFound.
func (s *Storage) GetSweet(ctx context.Context, id string) (*models.Sweet, error) {
	const op = "storage.GetSweet"

	query := `SELECT ` + sweetColumns + ` FROM sweets WHERE id = $1`
	sweet, err := scanSweet(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sweet, nil
}

// SearchSweets ищет сладости по фильтру. Пустой фильтр возвращает весь каталог.
func (s *Storage) SearchSweets(ctx context.Context, filter models.SearchFilter) ([]*models.Sweet, error) {
	const op = "storage.SearchSweets"

	var (
		conds []string
		args  []any
	)
	if filter.Name != "" {
		args = append(args, escapeLike(filter.Name))
		conds = append(conds, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, filter.MinPrice.String())
		conds = append(conds, fmt.Sprintf("price >= $%d::numeric", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, filter.MaxPrice.String())
		conds = append(conds, fmt.Sprintf("price <= $%d::numeric", len(args)))
	}

	query := `SELECT ` + sweetColumns + ` FROM sweets`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY name, id`

	res, err := querySweets(ctx, s.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CreateSweet вставляет новую сладость и возвращает сохранённую запись.
func (s *Storage) CreateSweet(ctx context.Context, sweet models.Sweet) (*models.Sweet, error) {
	const op = "storage.CreateSweet"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sweets (id, name, description, category, price, quantity, image_url)
			  VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
			  RETURNING ` + sweetColumns
	created, err := scanSweet(s.DB.QueryRowContext(ctx, query,
		sweet.ID, sweet.Name, sweet.Description, sweet.Category, sweet.Price.String(),
		sweet.Quantity, sweet.ImageURL))
	if err != nil {
		if isOutOfRange(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrOutOfRange)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdateSweet применяет частичное обновление. Поля с nil остаются прежними,
// ClearDescription и ClearImageURL обнуляют соответствующие колонки.
// Quantity из патча перезаписывает остаток напрямую; CHECK в схеме не даёт ему стать отрицательным.
func (s *Storage) UpdateSweet(ctx context.Context, id string, patch models.SweetPatch) (*models.Sweet, error) {
	const op = "storage.UpdateSweet"

	var price *string
	if patch.Price != nil {
		p := patch.Price.String()
		price = &p
	}

	query := `UPDATE sweets SET
				  name        = COALESCE($2::text, name),
				  description = CASE WHEN $8::boolean THEN NULL ELSE COALESCE($3::text, description) END,
				  category    = COALESCE($4::text, category),
				  price       = COALESCE($5::numeric, price),
				  quantity    = COALESCE($6::integer, quantity),
				  image_url   = CASE WHEN $9::boolean THEN NULL ELSE COALESCE($7::text, image_url) END
			  WHERE id = $1
			  RETURNING ` + sweetColumns
	updated, err := scanSweet(s.DB.QueryRowContext(ctx, query, id,
		patch.Name, patch.Description, patch.Category, price, patch.Quantity, patch.ImageURL,
		patch.ClearDescription, patch.ClearImageURL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		if isOutOfRange(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrOutOfRange)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteSweet удаляет сладость и сообщает, была ли она найдена.
// Записи журнала покупок не удаляются и остаются со ссылкой на удалённый товар.
func (s *Storage) DeleteSweet(ctx context.Context, id string) (bool, error) {
	const op = "storage.DeleteSweet"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

func querySweets(ctx context.Context, q querier, query string, args ...any) ([]*models.Sweet, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Sweet, 0)
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sweet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanSweet(row rowScanner) (*models.Sweet, error) {
	var (
		sweet       models.Sweet
		description sql.NullString
		imageURL    sql.NullString
	)
	if err := row.Scan(&sweet.ID, &sweet.Name, &description, &sweet.Category,
		&sweet.Price, &sweet.Quantity, &imageURL); err != nil {
		return nil, err
	}
	if description.Valid {
		sweet.Description = &description.String
	}
	if imageURL.Valid {
		sweet.ImageURL = &imageURL.String
	}
	return &sweet, nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы искать подстроку буквально.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
