package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

// Sales holds the sale-recording instruments.
type Sales struct {
	Registry *prometheus.Registry

	recorded     prometheus.Counter
	rejected     *prometheus.CounterVec
	revenue      prometheus.Counter
	lines        prometheus.Histogram
	unitsSold    prometheus.Counter
	restockUnits prometheus.Counter
}

// NewSales registers the instruments on a private registry together with the
// Go runtime and process collectors.
func NewSales() *Sales {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Sales{
		Registry: reg,
		recorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_recorded_total",
			Help: "Sales committed.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_rejected_total",
			Help: "Sale requests rejected, by reason.",
		}, []string{"reason"}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sales_revenue_total",
			Help: "Sum of totalAmount over committed sales.",
		}),
		lines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sale_lines",
			Help:    "Number of item lines per committed sale.",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}),
		unitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_units_sold_total",
			Help: "Stock units decremented by sales.",
		}),
		restockUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stock_units_restocked_total",
			Help: "Stock units added by restocks.",
		}),
	}
	reg.MustRegister(m.recorded, m.rejected, m.revenue, m.lines, m.unitsSold, m.restockUnits)
	return m
}

func (m *Sales) SaleRecorded(total decimal.Decimal, lines, units int) {
	if m == nil {
		return
	}
	m.recorded.Inc()
	m.revenue.Add(total.InexactFloat64())
	m.lines.Observe(float64(lines))
	m.unitsSold.Add(float64(units))
}

func (m *Sales) SaleRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *Sales) Restocked(units int) {
	if m == nil {
		return
	}
	m.restockUnits.Add(float64(units))
}
