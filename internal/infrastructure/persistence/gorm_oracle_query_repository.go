package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormOracleQueryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOracleQueryRepository creates a new GORM-based OracleQueryRepository implementation
func NewGormOracleQueryRepository(db *gorm.DB, logger logger.Logger) (forgery.OracleQueryRepository, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	return &gormOracleQueryRepository{
		db:     db,
		logger: logger,
	}, nil
}

// AutoMigrate creates or updates the oracle journal schema
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.OracleQueryModel{}); err != nil {
		return fmt.Errorf("failed to migrate oracle journal schema: %w", err)
	}
	return nil
}

func (r *gormOracleQueryRepository) Create(ctx context.Context, query *forgery.OracleQuery) error {
	if err := query.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OracleQueryModel{}
	model.FromDomain(query)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create oracle query: %w", err)
	}

	r.logger.Info("Journaled oracle query with id ", query.ID)
	return nil
}

func (r *gormOracleQueryRepository) List(ctx context.Context, filter *forgery.OracleQueryFilter) ([]*forgery.OracleQuery, error) {
	if filter == nil {
		filter = forgery.NewOracleQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.OracleQueryModel
	dbQuery := r.db.WithContext(ctx).Model(&models.OracleQueryModel{})

	if filter.Refused != nil {
		dbQuery = dbQuery.Where("refused = ?", *filter.Refused)
	}
	if !filter.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", filter.DateTimeCreated)
	}

	order := filter.SortOrder
	if order == "" {
		order = "asc"
	}
	dbQuery = dbQuery.Order(fmt.Sprintf("date_time_created %s", order))

	if filter.Limit > 0 {
		dbQuery = dbQuery.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		dbQuery = dbQuery.Offset(filter.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch oracle queries: %w", err)
	}

	domainList := make([]*forgery.OracleQuery, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormOracleQueryRepository) GetByID(ctx context.Context, queryID string) (*forgery.OracleQuery, error) {
	var model models.OracleQueryModel
	if err := r.db.WithContext(ctx).Where("id = ?", queryID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", forgery.ErrQueryNotFound, queryID)
		}
		return nil, fmt.Errorf("failed to fetch oracle query: %w", err)
	}
	return model.ToDomain(), nil
}
