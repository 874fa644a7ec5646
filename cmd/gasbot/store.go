package main

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quaverlib/quaver/discord"
)

var sqliteExecPragma = []string{
	"pragma journal_mode=WAL;",
	"pragma synchronous = normal;",
	"pragma temp_store = memory;",
	"pragma foreign_keys = ON;",
}

// Alert is a user's gas price alert threshold. At most one alert exists per
// user.
type Alert struct {
	ID        uint              `gorm:"primaryKey"`
	UserID    discord.UserID    `gorm:"uniqueIndex"`
	ChannelID discord.ChannelID // channel the alert was set from
	Threshold float64           // fires once the fast price drops to this, in gwei
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists alerts in a local SQLite file.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (and migrates) the alert database at path.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	for _, pragma := range sqliteExecPragma {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, errors.Wrapf(err, "failed to exec %q", pragma)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&Alert{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate")
	}

	return &Store{db: db}, nil
}

// SetAlert creates or replaces the user's alert.
func (s *Store) SetAlert(userID discord.UserID, channelID discord.ChannelID, threshold float64) error {
	alert := Alert{
		UserID:    userID,
		ChannelID: channelID,
		Threshold: threshold,
	}

	err := s.db.
		Where(Alert{UserID: userID}).
		Assign(Alert{ChannelID: channelID, Threshold: threshold}).
		FirstOrCreate(&alert).Error
	return errors.Wrap(err, "failed to save alert")
}

// Alert returns the user's alert, or nil if none is set.
func (s *Store) Alert(userID discord.UserID) (*Alert, error) {
	var alert Alert
	err := s.db.Where(Alert{UserID: userID}).First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query alert")
	}
	return &alert, nil
}

// ClearAlert removes the user's alert. It reports whether one existed.
func (s *Store) ClearAlert(userID discord.UserID) (bool, error) {
	res := s.db.Where(Alert{UserID: userID}).Delete(&Alert{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to clear alert")
	}
	return res.RowsAffected > 0, nil
}

// Alerts returns every armed alert.
func (s *Store) Alerts() ([]Alert, error) {
	var alerts []Alert
	err := s.db.Order("threshold desc").Find(&alerts).Error
	return alerts, errors.Wrap(err, "failed to list alerts")
}

// Triggered returns the alerts whose threshold the given fast price has
// reached.
func (s *Store) Triggered(fastPrice float64) ([]Alert, error) {
	var alerts []Alert
	err := s.db.Where("threshold >= ?", fastPrice).Find(&alerts).Error
	return alerts, errors.Wrap(err, "failed to query triggered alerts")
}

// Disarm deletes the alert by ID. It reports whether the alert was still
// armed, so concurrent polls cannot fire the same alert twice.
func (s *Store) Disarm(id uint) (bool, error) {
	res := s.db.Delete(&Alert{}, id)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "failed to disarm alert")
	}
	return res.RowsAffected > 0, nil
}
