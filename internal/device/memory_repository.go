package device

import (
	"context"
	"sort"
	"sync"

	"github.com/geotrail/geotrail/internal/apperr"
)

type link struct {
	userID   int64
	deviceID int64
}

type memoryRepository struct {
	mu      sync.Mutex
	devices map[int64]Device
	links   map[link]struct{}
}

// NewMemoryRepository builds an in-memory device store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{devices: make(map[int64]Device), links: make(map[link]struct{})}
}

func (r *memoryRepository) Create(_ context.Context, dev Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.devices[dev.ID]; exists {
		return apperr.E(apperr.ErrConflict, "device with this ID already exists")
	}
	r.devices[dev.ID] = dev
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dev, ok := r.devices[id]
	if !ok {
		return Device{}, apperr.ErrNotFound
	}
	return dev, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, userID int64) ([]Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var devices []Device
	for l := range r.links {
		if l.userID != userID {
			continue
		}
		if dev, ok := r.devices[l.deviceID]; ok {
			devices = append(devices, dev)
		}
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices, nil
}

func (r *memoryRepository) Link(_ context.Context, userID, deviceID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link{userID: userID, deviceID: deviceID}] = struct{}{}
	return nil
}

func (r *memoryRepository) Linked(_ context.Context, userID, deviceID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.links[link{userID: userID, deviceID: deviceID}]
	return ok, nil
}
