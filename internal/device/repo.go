package device

import (
	"errors"

	"github.com/lanpobre/rghstore/internal/exception"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteDatabase opens (creating if needed) and migrates the device
// database at dbFile
func NewSqliteDatabase(dbFile string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Device{}); err != nil {
		return nil, err
	}

	return db, nil
}

// NewSqliteRepo returns a new device repo backed by db
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

// GetAllDevices returns all devices from the database
func (r *SqliteRepo) GetAllDevices() ([]*Device, error) {
	devices := []*Device{}

	if result := r.db.Order("last_seen desc").Find(&devices); result.Error != nil {
		return nil, result.Error
	}

	return devices, nil
}

// GetDeviceByIP returns a device from the database
func (r *SqliteRepo) GetDeviceByIP(ip string) (*Device, error) {
	device := Device{}

	if result := r.db.Where("ip = ?", ip).First(&device); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return &device, nil
}

func (r *SqliteRepo) AddDevice(device *Device) (*Device, error) {
	if device.IP == "" {
		return nil, errors.New("device ip cannot be empty")
	}

	if result := r.db.Create(device); result.Error != nil {
		return nil, result.Error
	}

	return device, nil
}

func (r *SqliteRepo) RemoveDevice(ip string) error {
	if ip == "" {
		return errors.New("device ip cannot be empty")
	}

	return r.db.Where("ip = ?", ip).Delete(&Device{}).Error
}

func (r *SqliteRepo) UpdateDevice(device *Device) (*Device, error) {
	if device.IP == "" {
		return nil, errors.New("device ip cannot be empty")
	}

	if result := r.db.Save(device); result.Error != nil {
		return nil, result.Error
	}

	return device, nil
}
