package device

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

//go:generate mockgen -destination=../mock/device/mock_device.go -package=mock_device . Repo,Service

// Status represents whether a device answered the last time we tried it
type Status string

// Source represents how a device came to be known
type Source string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	SourceScan    Source = "scan"
	SourceConnect Source = "connect"
)

// ProbeInfo represents the credentials a device accepted
type ProbeInfo struct {
	User string `json:"user"`
	Port int    `json:"port"`
}

// Device represents a console seen on the network
type Device struct {
	IP       string `gorm:"primaryKey"`
	Status   Status
	Source   Source
	LastSeen time.Time
	Probe    datatypes.JSON
}

// NewProbe encodes probe info for storage on a Device
func NewProbe(info ProbeInfo) datatypes.JSON {
	data, _ := json.Marshal(info)
	return datatypes.JSON(data)
}

// ProbeInfo decodes the probe info stored on the device, if any
func (d *Device) ProbeInfo() (*ProbeInfo, error) {
	info := &ProbeInfo{}

	if len(d.Probe) == 0 {
		return info, nil
	}

	if err := json.Unmarshal(d.Probe, info); err != nil {
		return nil, err
	}

	return info, nil
}

// Repo interface representing access to stored devices
type Repo interface {
	GetAllDevices() ([]*Device, error)
	GetDeviceByIP(ip string) (*Device, error)
	AddDevice(device *Device) (*Device, error)
	UpdateDevice(device *Device) (*Device, error)
	RemoveDevice(ip string) error
}

// Service interface for recording devices seen by scans and connects
type Service interface {
	GetAllDevices() ([]*Device, error)
	GetDevice(ip string) (*Device, error)
	AddOrUpdateDevice(device *Device) error
	MarkDeviceOffline(ip string) error
	RemoveDevice(ip string) error
}
