package bidrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/bid"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// unique_violation, raised by the live-bid partial unique index.
const pgUniqueViolation = "23505"

// GormBidRepository implements BidRepository using GORM.
type GormBidRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBidRepository creates a new GORM bid repository.
func NewGormBidRepository(db *gorm.DB, tracker aggregateTracker) *GormBidRepository {
	return &GormBidRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bid to the database. A unique-index violation on the
// live-bid constraint comes back as a DuplicateBidError, same as the
// handler-level check it backstops.
func (r *GormBidRepository) Add(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return &bid.DuplicateBidError{
				OrderID:   aggregate.OrderID(),
				CarrierID: aggregate.CarrierID(),
			}
		}

		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing bid to the database.
func (r *GormBidRepository) Update(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetForOrder retrieves a bid by ID scoped to the order. A bid that exists
// but belongs to a different order is reported as not found, never leaked.
func (r *GormBidRepository) GetForOrder(ctx context.Context, orderID, bidID kernel.UUID) (*bid.Bid, error) {
	if err := errors.Join(orderID.Validate(), bidID.Validate()); err != nil {
		return nil, err
	}

	var dto BidDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND order_id = ?", bidID.Bytes(), orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", bidID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForOrder retrieves all bids on an order, cheapest first and newest
// first within equal prices.
func (r *GormBidRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BidDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("price ASC, created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}

	return bids, nil
}

// HasLiveBid reports whether the carrier has a non-withdrawn bid on the
// order.
func (r *GormBidRepository) HasLiveBid(ctx context.Context, orderID, carrierID kernel.UUID) (bool, error) {
	if err := errors.Join(orderID.Validate(), carrierID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("order_id = ? AND carrier_id = ? AND status <> ?",
			orderID.Bytes(), carrierID.Bytes(), bid.Withdrawn.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
