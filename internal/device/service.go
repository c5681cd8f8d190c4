package device

import (
	"errors"

	"github.com/lanpobre/rghstore/internal/event"
	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/logger"
)

// DeviceService represents our device.Service implementation
type DeviceService struct {
	log    logger.Logger
	repo   Repo
	events event.Manager
}

// NewService returns a new instance DeviceService. Updates are announced
// on events as event.DeviceUpdateEventType.
func NewService(repo Repo, events event.Manager) *DeviceService {
	return &DeviceService{
		log:    logger.New().With("device"),
		repo:   repo,
		events: events,
	}
}

// GetAllDevices returns all devices from the database
func (s *DeviceService) GetAllDevices() ([]*Device, error) {
	return s.repo.GetAllDevices()
}

// GetDevice returns a single device by ip
func (s *DeviceService) GetDevice(ip string) (*Device, error) {
	return s.repo.GetDeviceByIP(ip)
}

// AddOrUpdateDevice adds or updates a device
func (s *DeviceService) AddOrUpdateDevice(req *Device) error {
	_, err := s.repo.GetDeviceByIP(req.IP)

	if errors.Is(err, exception.ErrRecordNotFound) {
		// handle add case
		added, err2 := s.repo.AddDevice(req)

		if err2 != nil {
			return err2
		}

		s.sendDeviceUpdateEvent(added)

		return nil
	}

	if err != nil {
		// handle all other errors
		return err
	}

	updated, err := s.repo.UpdateDevice(req)

	if err != nil {
		return err
	}

	s.sendDeviceUpdateEvent(updated)

	return nil
}

// MarkDeviceOffline marks a known device offline
func (s *DeviceService) MarkDeviceOffline(ip string) error {
	device, err := s.repo.GetDeviceByIP(ip)

	if errors.Is(err, exception.ErrRecordNotFound) {
		// never seen this device, nothing to mark
		return nil
	}

	if err != nil {
		return err
	}

	device.Status = StatusOffline

	updated, err := s.repo.UpdateDevice(device)

	if err != nil {
		return err
	}

	s.sendDeviceUpdateEvent(updated)

	return nil
}

// RemoveDevice forgets a device
func (s *DeviceService) RemoveDevice(ip string) error {
	return s.repo.RemoveDevice(ip)
}

func (s *DeviceService) sendDeviceUpdateEvent(device *Device) {
	s.log.Debug().
		Str("ip", device.IP).
		Str("status", string(device.Status)).
		Msg("device updated")

	if s.events == nil {
		return
	}

	s.events.Send(event.Event{
		Type:    event.DeviceUpdateEventType,
		Payload: device,
	})
}
