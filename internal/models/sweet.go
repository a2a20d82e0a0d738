package models

import (
	"slices"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
)

// Categories — закрытый список категорий сладостей.
var Categories = []string{
	"chocolates",
	"gummies",
	"hard_candies",
	"lollipops",
	"caramels",
	"jellies",
	"licorice",
	"mints",
}

// IsCategory сообщает, входит ли c в список категорий.
func IsCategory(c string) bool {
	return slices.Contains(Categories, c)
}

// Sweet — товар каталога. Quantity никогда не бывает отрицательным.
type Sweet struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Category    string       `json:"category"`
	Price       money.Amount `json:"price"`
	Quantity    int          `json:"quantity"`
	ImageURL    *string      `json:"imageUrl"`
}

// SweetPatch — частичное обновление сладости: nil означает «не менять».
// Quantity здесь — прямая перезапись остатка администратором.
// Clear* обнуляют необязательные поля и важнее соответствующего значения.
type SweetPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *money.Amount
	Quantity    *int
	ImageURL    *string

	ClearDescription bool
	ClearImageURL    bool
}

// IsEmpty сообщает, что в патче нет ни одного поля.
func (p SweetPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Price == nil && p.Quantity == nil && p.ImageURL == nil &&
		!p.ClearDescription && !p.ClearImageURL
}

// SearchFilter — параметры поиска по каталогу. Все поля необязательны и объединяются через AND.
type SearchFilter struct {
	Name     string        // Подстрока названия, без учёта регистра
	Category string        // Точное совпадение категории
	MinPrice *money.Amount // Нижняя граница цены, включительно
	MaxPrice *money.Amount // Верхняя граница цены, включительно
}

// IsEmpty сообщает, что ни один фильтр не задан.
func (f SearchFilter) IsEmpty() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}
