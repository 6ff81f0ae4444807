package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// ReturnRateReport aggregates order and return volume for one store over a
// window.
type ReturnRateReport struct {
	StoreDomain string    `json:"storeDomain"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Orders      int64     `json:"orders"`
	Returns     int64     `json:"returns"`
	// Rate is Returns/Orders; 0 when the store had no orders in the window.
	Rate float64 `json:"rate"`
}

// Service answers read-only aggregation questions over synced data.
type Service struct {
	stores  commerce.StoreRepository
	orders  commerce.OrderRepository
	returns commerce.ReturnRepository
	logger  *zap.Logger
}

// NewService creates a new analytics Service.
func NewService(
	stores commerce.StoreRepository,
	orders commerce.OrderRepository,
	returns commerce.ReturnRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		stores:  stores,
		orders:  orders,
		returns: returns,
		logger:  logger.Named("analytics"),
	}
}

// ReturnRate computes the return rate for a store over [from, to).
func (s *Service) ReturnRate(ctx context.Context, storeDomain string, from, to time.Time) (*ReturnRateReport, error) {
	store, err := s.stores.FindByDomain(ctx, commerce.PlatformShopify, storeDomain)
	if err != nil {
		return nil, err
	}

	orderCount, err := s.orders.CountByStore(ctx, store.ID, from, to)
	if err != nil {
		return nil, err
	}
	returnCount, err := s.returns.CountByStore(ctx, store.ID, from, to)
	if err != nil {
		return nil, err
	}

	report := &ReturnRateReport{
		StoreDomain: store.ExternalDomain,
		From:        from,
		To:          to,
		Orders:      orderCount,
		Returns:     returnCount,
	}
	if orderCount > 0 {
		report.Rate = float64(returnCount) / float64(orderCount)
	}

	s.logger.Debug("return rate computed",
		zap.String("store", store.ExternalDomain),
		zap.Int64("orders", orderCount),
		zap.Int64("returns", returnCount),
	)
	return report, nil
}
