package activityrepo

import (
	"context"
	"errors"
	"fmt"

	"falcon/internal/core/domain/model/activity"
	"falcon/internal/core/domain/model/kernel"
	"falcon/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// ErrEntryAlreadyExists is returned when appending an entry whose ID is
// already present. Entries are immutable, so a duplicate append is always a
// caller bug, never an upsert.
var ErrEntryAlreadyExists = errors.New("audit entry already exists")

// GormActivityRepository implements ActivityRepository using GORM.
// The audit trail is append-only: this type deliberately has no update or
// delete methods.
type GormActivityRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormActivityRepository creates a new GORM activity repository.
func NewGormActivityRepository(db *gorm.DB, tracker aggregateTracker) *GormActivityRepository {
	return &GormActivityRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append persists one new audit entry.
// A primary key collision surfaces as ErrEntryAlreadyExists; the stored row
// is left untouched.
func (r *GormActivityRepository) Append(ctx context.Context, entry *activity.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrEntryAlreadyExists, entry.ID())
		}
		return errs.NewPersistenceError("append audit entry", err)
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-key violation.
// The gorm postgres driver is pgx-backed, so server errors surface as
// *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// ListForOrder retrieves all entries for an order, newest first.
// Entries sharing a timestamp are tie-broken by ID so the ordering is stable.
func (r *GormActivityRepository) ListForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*activity.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, errs.NewPersistenceError("list audit entries", err)
	}

	entries := make([]*activity.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
