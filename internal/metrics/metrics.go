// Package metrics содержит Prometheus-метрики магазина.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Причины отказа в покупке.
const (
	ReasonInsufficientStock = "insufficient_stock"
	ReasonNotFound          = "not_found"
	ReasonInvalidQuantity   = "invalid_quantity"
)

// Metrics хранит счётчики HTTP-запросов и складских операций.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	Purchases          prometheus.Counter
	UnitsSold          prometheus.Counter
	PurchaseRejections *prometheus.CounterVec
	RestockedUnits     prometheus.Counter
}

// New создаёт счётчики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sweetshop_http_requests_total",
			Help: "Количество HTTP-запросов по методу, маршруту и статусу.",
		}, []string{"method", "route", "status"}),
		Purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sweetshop_purchases_total",
			Help: "Количество успешных покупок.",
		}),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sweetshop_units_sold_total",
			Help: "Количество проданных единиц товара.",
		}),
		PurchaseRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sweetshop_purchase_rejections_total",
			Help: "Количество отклонённых покупок по причине.",
		}, []string{"reason"}),
		RestockedUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sweetshop_restocked_units_total",
			Help: "Количество единиц, добавленных при пополнении склада.",
		}),
	}
	reg.MustRegister(m.HTTPRequests, m.Purchases, m.UnitsSold, m.PurchaseRejections, m.RestockedUnits)
	return m
}

// ObservePurchase учитывает успешную покупку qty единиц.
func (m *Metrics) ObservePurchase(qty int) {
	m.Purchases.Inc()
	m.UnitsSold.Add(float64(qty))
}

// ObservePurchaseRejected учитывает отказ в покупке.
func (m *Metrics) ObservePurchaseRejected(reason string) {
	m.PurchaseRejections.WithLabelValues(reason).Inc()
}

// ObserveRestock учитывает пополнение склада на qty единиц.
func (m *Metrics) ObserveRestock(qty int) {
	m.RestockedUnits.Add(float64(qty))
}

// ObserveRequest учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveRequest(method, route, status string) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
}
