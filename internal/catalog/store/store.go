// Package store persists catalog entries with gorm and serves them back as a
// catalog.Reader. Stored bodies go through the same validation as imported
// payloads, so a row edited by hand into an invalid shape is quarantined on
// read instead of reaching a session.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/model"
)

// ErrUnsupportedDriver is returned by Open for drivers other than sqlite and
// postgres.
var ErrUnsupportedDriver = errors.New("store: unsupported driver")

// FieldSetRecord is one catalog entry row.
type FieldSetRecord struct {
	ID        string         `gorm:"type:varchar(100);primaryKey"`
	Title     string         `gorm:"type:varchar(200);not null"`
	Position  int            `gorm:"not null;index"`
	Body      datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FieldSetRecord) TableName() string {
	return "field_sets"
}

// Store is a gorm-backed catalog.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ catalog.Reader = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report quarantined rows.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open connects to driver ("sqlite" or "postgres") at dsn.
func Open(driver, dsn string, opts ...Option) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	return New(db, opts...), nil
}

// New wraps an existing gorm handle.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Migrate creates or updates the field_sets table.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&FieldSetRecord{})
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Import parses payload and upserts the accepted definitions. New entries are
// appended after existing ones; known ids keep their position.
func (s *Store) Import(ctx context.Context, payload []byte) (catalog.ParseResult, error) {
	result, err := catalog.Parse(payload)
	if err != nil {
		return catalog.ParseResult{}, err
	}
	if err := s.Upsert(ctx, result.Definitions...); err != nil {
		return catalog.ParseResult{}, err
	}
	for _, rejected := range result.Quarantined {
		s.logger.Warn("catalog entry quarantined",
			zap.Int("index", rejected.Index),
			zap.String("id", rejected.ID),
			zap.String("reason", rejected.Reason))
	}
	return result, nil
}

// Upsert stores defs in one transaction.
func (s *Store) Upsert(ctx context.Context, defs ...model.FieldSetDefinition) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		row := tx.Model(&FieldSetRecord{}).Select("COALESCE(MAX(position), -1)").Row()
		if err := row.Scan(&last); err != nil {
			return fmt.Errorf("store: read last position: %w", err)
		}
		next := int(last) + 1

		for _, def := range defs {
			body, err := json.Marshal(catalog.RawFromDefinition(def))
			if err != nil {
				return fmt.Errorf("store: encode %q: %w", def.ID, err)
			}

			var existing FieldSetRecord
			err = tx.Where("id = ?", def.ID).Take(&existing).Error
			switch {
			case err == nil:
				existing.Title = def.Title
				existing.Body = datatypes.JSON(body)
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				record := FieldSetRecord{ID: def.ID, Title: def.Title, Position: next, Body: datatypes.JSON(body)}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
				next++
			default:
				return err
			}
		}
		return nil
	})
}

// Delete removes the entry with id. Positions of the remaining entries are
// left untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&FieldSetRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (model.FieldSetDefinition, error) {
	var record FieldSetRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FieldSetDefinition{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
	}
	if err != nil {
		return model.FieldSetDefinition{}, err
	}

	def, err := s.decode(record)
	if err != nil {
		s.quarantine(record, err)
		return model.FieldSetDefinition{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
	}
	return def, nil
}

func (s *Store) List(ctx context.Context) ([]model.FieldSetDefinition, error) {
	var records []FieldSetRecord
	if err := s.db.WithContext(ctx).Order("position asc, id asc").Find(&records).Error; err != nil {
		return nil, err
	}

	defs := make([]model.FieldSetDefinition, 0, len(records))
	for _, record := range records {
		def, err := s.decode(record)
		if err != nil {
			s.quarantine(record, err)
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (s *Store) decode(record FieldSetRecord) (model.FieldSetDefinition, error) {
	var raw catalog.RawFieldSet
	if err := json.Unmarshal(record.Body, &raw); err != nil {
		return model.FieldSetDefinition{}, err
	}
	raw.ID = record.ID
	if raw.Title == "" {
		raw.Title = record.Title
	}
	return catalog.Convert(raw)
}

func (s *Store) quarantine(record FieldSetRecord, err error) {
	s.logger.Warn("stored catalog entry quarantined",
		zap.String("id", record.ID),
		zap.Error(err))
}
