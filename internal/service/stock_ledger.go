package service

import "go-sales-inventory/internal/model"

// stockLedger tracks pending decrements against one stock snapshot per
// product for the lifetime of a single sale request. Nothing is written
// until the ledger is committed.
type stockLedger struct {
	snapshot map[string]model.Product
	pending  map[string]int
	order    []string
}

func newStockLedger(products []model.Product) *stockLedger {
	l := &stockLedger{
		snapshot: make(map[string]model.Product, len(products)),
		pending:  make(map[string]int, len(products)),
	}
	for _, p := range products {
		l.snapshot[p.ID] = p
	}
	return l
}

// Product returns the snapshot taken when the request locked its rows.
func (l *stockLedger) Product(id string) (model.Product, bool) {
	p, ok := l.snapshot[id]
	return p, ok
}

// Available is the snapshot stock minus everything already reserved by
// earlier lines of the same request.
func (l *stockLedger) Available(id string) int {
	return l.snapshot[id].Stock - l.pending[id]
}

// Reserve records a decrement or fails without changing the ledger.
func (l *stockLedger) Reserve(id string, quantity int) error {
	p, ok := l.snapshot[id]
	if !ok {
		return ErrProductNotFound
	}
	available := l.Available(id)
	if available < quantity {
		return &InsufficientStockError{Code: p.Code, Available: available, Requested: quantity}
	}
	if _, seen := l.pending[id]; !seen {
		l.order = append(l.order, id)
	}
	l.pending[id] += quantity
	return nil
}

// stockChange is the final stock of one product after the request.
type stockChange struct {
	ProductID string
	Code      string
	Name      string
	OldStock  int
	NewStock  int
}

// Changes lists the resulting stock per touched product, in first-use order.
func (l *stockLedger) Changes() []stockChange {
	changes := make([]stockChange, 0, len(l.order))
	for _, id := range l.order {
		p := l.snapshot[id]
		changes = append(changes, stockChange{
			ProductID: id,
			Code:      p.Code,
			Name:      p.Name,
			OldStock:  p.Stock,
			NewStock:  p.Stock - l.pending[id],
		})
	}
	return changes
}
