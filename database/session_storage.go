package database

import (
	"time"

	"github.com/skillshare/skillshare_hub/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionStorage persists login sessions in the auth_sessions table so they
// survive API restarts. It implements fiber.Storage for the session
// middleware; the payload stays an opaque blob, only the expiry is read back
// here to filter stale rows.
type SessionStorage struct {
	db *gorm.DB
}

func NewSessionStorage(db *gorm.DB) *SessionStorage {
	return &SessionStorage{db: db}
}

func (s *SessionStorage) Get(key string) ([]byte, error) {
	var record models.AuthSession
	err := s.db.First(&record, "sid = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !record.ExpiresAt.IsZero() && record.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return record.Data, nil
}

func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	record := models.AuthSession{SID: key, Data: val}
	if exp > 0 {
		record.ExpiresAt = time.Now().Add(exp)
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sid"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&record).Error
}

func (s *SessionStorage) Delete(key string) error {
	return s.db.Delete(&models.AuthSession{}, "sid = ?", key).Error
}

func (s *SessionStorage) Reset() error {
	return s.db.Where("1 = 1").Delete(&models.AuthSession{}).Error
}

func (s *SessionStorage) Close() error {
	return nil
}
