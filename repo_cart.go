package storefront

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CartLines is the persisted cart-line repository. It satisfies
// CartRepository so CartStore can treat it as its storage backend.
type CartLines interface {
	repository.Repository[*CartLineRecord]

	Load(ctx context.Context) ([]CartLine, error)
	SaveLine(ctx context.Context, line CartLine, position int) error
	DeleteLine(ctx context.Context, productID int64) error
	DeleteAll(ctx context.Context) error
}

type cartLines struct {
	repository.Repository[*CartLineRecord]
	db *bun.DB
}

var (
	_ CartLines      = (*cartLines)(nil)
	_ CartRepository = (*cartLines)(nil)
)

// NewCartLinesRepository returns the bun-backed cart line repository.
func NewCartLinesRepository(db *bun.DB) CartLines {
	repo := repository.NewRepository[*CartLineRecord](db, repository.ModelHandlers[*CartLineRecord]{
		NewRecord: func() *CartLineRecord { return &CartLineRecord{} },
		GetID: func(r *CartLineRecord) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *CartLineRecord, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
	})

	return &cartLines{
		Repository: repo,
		db:         db,
	}
}

// Load returns the persisted lines in display order.
func (r *cartLines) Load(ctx context.Context) ([]CartLine, error) {
	records := []*CartLineRecord{}

	err := r.db.NewSelect().
		Model(&records).
		Order("position ASC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load cart lines")
	}

	lines := make([]CartLine, 0, len(records))
	for _, record := range records {
		lines = append(lines, CartLine{
			ProductID: record.ProductID,
			Name:      record.Name,
			UnitPrice: record.UnitPrice,
			Quantity:  record.Quantity,
			ImageRef:  record.ImageRef,
		})
	}

	return lines, nil
}

// SaveLine upserts the line keyed by product so repeated saves of a merged
// line stay a single row.
func (r *cartLines) SaveLine(ctx context.Context, line CartLine, position int) error {
	record := &CartLineRecord{
		ID:        uuid.New(),
		ProductID: line.ProductID,
		Name:      line.Name,
		UnitPrice: line.UnitPrice,
		Quantity:  line.Quantity,
		ImageRef:  line.ImageRef,
		Position:  position,
	}

	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (product_id) DO UPDATE").
		Set("quantity = EXCLUDED.quantity").
		Set("unit_price = EXCLUDED.unit_price").
		Set("position = EXCLUDED.position").
		Set("updated_at = CURRENT_TIMESTAMP").
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to save cart line")
	}

	return nil
}

func (r *cartLines) DeleteLine(ctx context.Context, productID int64) error {
	_, err := r.db.NewDelete().
		Model((*CartLineRecord)(nil)).
		Where("product_id = ?", productID).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete cart line")
	}

	return nil
}

func (r *cartLines) DeleteAll(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*CartLineRecord)(nil)).
		Where("TRUE").
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to clear cart lines")
	}

	return nil
}
