package models

import (
	"time"

	"github.com/magabrotheeeer/sweet-shop/internal/lib/money"
)

// Purchase — неизменяемая запись журнала покупок.
// TotalPrice фиксируется в момент покупки и не пересчитывается при смене цены товара.
type Purchase struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	SweetID     string       `json:"sweetId"`
	Quantity    int          `json:"quantity"`
	TotalPrice  money.Amount `json:"totalPrice"`
	PurchasedAt time.Time    `json:"purchasedAt"`
}

// PurchaseWithSweet — запись истории покупок вместе с текущим состоянием товара.
// Sweet равен nil, если товар уже удалён из каталога.
type PurchaseWithSweet struct {
	Purchase
	Sweet *Sweet `json:"sweet"`
}
