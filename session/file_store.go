package session

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sessionModel is the single-row table backing FileStore. The token and
// private key are sealed before they touch disk; the DID is public material
// and stored as-is.
type sessionModel struct {
	ID         int    `gorm:"primarykey"` // always 1, one session per store
	Token      string // sealed
	DID        string
	PrivateKey string // sealed

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (sessionModel) TableName() string {
	return "sessions"
}

// FileStore is a durable Store backed by a sqlite file. It is the
// long-lived-tool equivalent of the browser's origin-scoped storage.
type FileStore struct {
	db      *gorm.DB
	sealKey []byte
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens (or creates) the sqlite database at path and runs
// migrations. sealKey must be exactly 32 bytes.
func NewFileStore(path string, sealKey []byte) (*FileStore, error) {
	if len(sealKey) != 32 {
		return nil, fmt.Errorf("seal key must be exactly 32 bytes, got %d", len(sealKey))
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	return NewFileStoreDB(db, sealKey)
}

// NewFileStoreDB wraps an already-open gorm DB. Used by tests that want an
// in-memory database.
func NewFileStoreDB(db *gorm.DB, sealKey []byte) (*FileStore, error) {
	if err := db.AutoMigrate(&sessionModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sessions table: %w", err)
	}
	return &FileStore{db: db, sealKey: sealKey}, nil
}

// GetSession implements [Store].
func (f *FileStore) GetSession() (*Session, error) {
	var row sessionModel
	err := f.db.Where("id = ?", 1).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var token string
	if err := Unseal(row.Token, f.sealKey, &token); err != nil {
		return nil, fmt.Errorf("failed to unseal token: %w", err)
	}
	var privateKey string
	if row.PrivateKey != "" {
		if err := Unseal(row.PrivateKey, f.sealKey, &privateKey); err != nil {
			return nil, fmt.Errorf("failed to unseal private key: %w", err)
		}
	}
	return &Session{
		Token:               token,
		DID:                 row.DID,
		PrivateKeyMultibase: privateKey,
	}, nil
}

// SaveSession implements [Store]. The row is upserted so repeated logins
// replace the previous session.
func (f *FileStore) SaveSession(session *Session) error {
	row := sessionModel{ID: 1, DID: session.DID}

	var err error
	if row.Token, err = Seal(session.Token, f.sealKey); err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}
	if session.PrivateKeyMultibase != "" {
		if row.PrivateKey, err = Seal(session.PrivateKeyMultibase, f.sealKey); err != nil {
			return fmt.Errorf("failed to seal private key: %w", err)
		}
	}
	if err := f.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear implements [Store]. Token, DID and private key are removed together
// by deleting the single row.
func (f *FileStore) Clear() error {
	if err := f.db.Where("id = ?", 1).Delete(&sessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
