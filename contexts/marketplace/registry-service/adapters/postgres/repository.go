package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"databazaar/contexts/marketplace/registry-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates the two registry tables. Safe to run on every startup.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&dataItemModel{}, &purchaserModel{})
}

func (r *Repository) GetDataItem(ctx context.Context, id string) (ports.DataItem, bool, error) {
	var row dataItemModel
	err := r.db.WithContext(ctx).
		Where("item_id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DataItem{}, false, nil
		}
		return ports.DataItem{}, false, err
	}
	return row.toEntity(), true, nil
}

// PutDataItem is an upsert: insert first, fall back to a full-row update when
// the primary key already exists.
func (r *Repository) PutDataItem(ctx context.Context, item ports.DataItem) error {
	row := dataItemModelFromEntity(item)
	err := r.db.WithContext(ctx).Create(&row).Error
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&dataItemModel{}).
		Where("item_id = ?", item.ID).
		Updates(row.updateColumns()).
		Error
}

func (r *Repository) RemoveDataItem(ctx context.Context, id string) (ports.DataItem, bool, error) {
	var rows []dataItemModel
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("item_id = ?", id).
		Delete(&rows)
	if result.Error != nil {
		return ports.DataItem{}, false, result.Error
	}
	if result.RowsAffected == 0 || len(rows) == 0 {
		return ports.DataItem{}, false, nil
	}
	return rows[0].toEntity(), true, nil
}

func (r *Repository) ListDataItems(ctx context.Context) ([]ports.DataItem, error) {
	var rows []dataItemModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, item_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.DataItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetPurchaser(ctx context.Context, id string) (ports.Purchaser, bool, error) {
	var row purchaserModel
	err := r.db.WithContext(ctx).
		Where("purchaser_id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Purchaser{}, false, nil
		}
		return ports.Purchaser{}, false, err
	}
	purchaser, err := row.toEntity()
	if err != nil {
		return ports.Purchaser{}, false, err
	}
	return purchaser, true, nil
}

func (r *Repository) PutPurchaser(ctx context.Context, purchaser ports.Purchaser) error {
	row, err := purchaserModelFromEntity(purchaser)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Create(&row).Error
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&purchaserModel{}).
		Where("purchaser_id = ?", purchaser.ID).
		Updates(row.updateColumns()).
		Error
}

func (r *Repository) RemovePurchaser(ctx context.Context, id string) (ports.Purchaser, bool, error) {
	var rows []purchaserModel
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("purchaser_id = ?", id).
		Delete(&rows)
	if result.Error != nil {
		return ports.Purchaser{}, false, result.Error
	}
	if result.RowsAffected == 0 || len(rows) == 0 {
		return ports.Purchaser{}, false, nil
	}
	purchaser, err := rows[0].toEntity()
	if err != nil {
		return ports.Purchaser{}, false, err
	}
	return purchaser, true, nil
}

func (r *Repository) ListPurchasers(ctx context.Context) ([]ports.Purchaser, error) {
	var rows []purchaserModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, purchaser_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	purchasers := make([]ports.Purchaser, 0, len(rows))
	for _, row := range rows {
		purchaser, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		purchasers = append(purchasers, purchaser)
	}
	return purchasers, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type dataItemModel struct {
	ItemID        string    `gorm:"column:item_id;primaryKey"`
	Seller        string    `gorm:"column:seller"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	Price         uint64    `gorm:"column:price"`
	AttachmentURL string    `gorm:"column:attachment_url"`
	DataFormat    string    `gorm:"column:data_format"`
	Status        string    `gorm:"column:status"`
	Quality       string    `gorm:"column:quality"`
	Rating        uint32    `gorm:"column:rating"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (dataItemModel) TableName() string {
	return "data_items"
}

func dataItemModelFromEntity(item ports.DataItem) dataItemModel {
	return dataItemModel{
		ItemID:        item.ID,
		Seller:        item.Seller,
		Title:         item.Title,
		Description:   item.Description,
		Price:         item.Price,
		AttachmentURL: item.AttachmentURL,
		DataFormat:    item.DataFormat,
		Status:        item.Status,
		Quality:       item.Quality,
		Rating:        item.Rating,
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
}

func (m dataItemModel) toEntity() ports.DataItem {
	return ports.DataItem{
		ID:            m.ItemID,
		Seller:        m.Seller,
		Title:         m.Title,
		Description:   m.Description,
		Price:         m.Price,
		AttachmentURL: m.AttachmentURL,
		DataFormat:    m.DataFormat,
		Status:        m.Status,
		Quality:       m.Quality,
		Rating:        m.Rating,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

// updateColumns lists every mutable column. The seller column is included on
// purpose: ownership immutability is enforced by the application layer, the
// store stays a plain upsert.
func (m dataItemModel) updateColumns() map[string]any {
	return map[string]any{
		"seller":         m.Seller,
		"title":          m.Title,
		"description":    m.Description,
		"price":          m.Price,
		"attachment_url": m.AttachmentURL,
		"data_format":    m.DataFormat,
		"status":         m.Status,
		"quality":        m.Quality,
		"rating":         m.Rating,
		"created_at":     m.CreatedAt,
		"updated_at":     m.UpdatedAt,
	}
}

type purchaserModel struct {
	PurchaserID    string    `gorm:"column:purchaser_id;primaryKey"`
	Owner          string    `gorm:"column:owner"`
	Name           string    `gorm:"column:name"`
	Price          uint64    `gorm:"column:price"`
	Message        string    `gorm:"column:message"`
	PurchasedItems []byte    `gorm:"column:purchased_items;type:jsonb"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (purchaserModel) TableName() string {
	return "purchasers"
}

func purchaserModelFromEntity(purchaser ports.Purchaser) (purchaserModel, error) {
	purchased := purchaser.PurchasedItems
	if purchased == nil {
		purchased = []string{}
	}
	raw, err := json.Marshal(purchased)
	if err != nil {
		return purchaserModel{}, err
	}
	return purchaserModel{
		PurchaserID:    purchaser.ID,
		Owner:          purchaser.Owner,
		Name:           purchaser.Name,
		Price:          purchaser.Price,
		Message:        purchaser.Message,
		PurchasedItems: raw,
		CreatedAt:      purchaser.CreatedAt.UTC(),
		UpdatedAt:      purchaser.UpdatedAt.UTC(),
	}, nil
}

func (m purchaserModel) toEntity() (ports.Purchaser, error) {
	purchased := []string{}
	if len(m.PurchasedItems) > 0 {
		if err := json.Unmarshal(m.PurchasedItems, &purchased); err != nil {
			return ports.Purchaser{}, err
		}
	}
	return ports.Purchaser{
		ID:             m.PurchaserID,
		Owner:          m.Owner,
		Name:           m.Name,
		Price:          m.Price,
		Message:        m.Message,
		PurchasedItems: purchased,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}, nil
}

func (m purchaserModel) updateColumns() map[string]any {
	return map[string]any{
		"owner":           m.Owner,
		"name":            m.Name,
		"price":           m.Price,
		"message":         m.Message,
		"purchased_items": m.PurchasedItems,
		"created_at":      m.CreatedAt,
		"updated_at":      m.UpdatedAt,
	}
}

var _ ports.DataItemRepository = (*Repository)(nil)
var _ ports.PurchaserRepository = (*Repository)(nil)
