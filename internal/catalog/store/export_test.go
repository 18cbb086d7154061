package store

import "gorm.io/gorm"

// DB exposes the gorm handle to tests that need to tamper with rows.
func (s *Store) DB() *gorm.DB {
	return s.db
}
