package app

import (
	"context"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// OrderServiceImpl implements the OrderService interface.
type OrderServiceImpl struct {
	orderRepo secondary.OrderRepository
}

// NewOrderService creates a new OrderService with injected dependencies.
func NewOrderService(orderRepo secondary.OrderRepository) *OrderServiceImpl {
	return &OrderServiceImpl{orderRepo: orderRepo}
}

func recordToOrder(r *secondary.OrderRecord) *primary.Order {
	return &primary.Order{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		WarehouseID: r.WarehouseID,
		Status:      r.Status,
		Priority:    r.Priority,
		HasPriority: r.HasPriority,
		CreatedAt:   r.CreatedAt,
	}
}

// GetOrder retrieves an order with its lines.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, companyID, orderID string) (*primary.Order, error) {
	if companyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}

	record, err := s.orderRepo.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	order := recordToOrder(record)

	lines, err := s.orderRepo.ListLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, primary.OrderLine{
			ID:        line.ID,
			LineNo:    line.LineNo,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return order, nil
}

// ListOrders lists orders with optional filters.
func (s *OrderServiceImpl) ListOrders(ctx context.Context, filters primary.OrderFilters) ([]*primary.Order, error) {
	if filters.CompanyID == "" {
		return nil, primary.ErrCompanyContextMissing
	}

	records, err := s.orderRepo.List(ctx, secondary.OrderFilters{
		CompanyID:   filters.CompanyID,
		WarehouseID: filters.WarehouseID,
		Status:      filters.Status,
		Limit:       filters.Limit,
	})
	if err != nil {
		return nil, err
	}

	orders := make([]*primary.Order, 0, len(records))
	for _, r := range records {
		orders = append(orders, recordToOrder(r))
	}
	return orders, nil
}

// Ensure OrderServiceImpl implements the interface
var _ primary.OrderService = (*OrderServiceImpl)(nil)
