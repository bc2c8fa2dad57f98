package local

import (
	"context"

	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
)

type devicesDoc struct {
	Devices []models.UserDevice `json:"devices"`
}

type DeviceStore struct {
	doc *document[devicesDoc]
}

func NewDeviceStore(kv cache.KV) *DeviceStore {
	return &DeviceStore{doc: newDocument[devicesDoc](kv, "devices-storage")}
}

// Upsert keys devices by token hash.
func (s *DeviceStore) Upsert(ctx context.Context, dev models.UserDevice) error {
	return s.doc.update(ctx, dev.UserID, func(d *devicesDoc) error {
		for i := range d.Devices {
			if d.Devices[i].TokenHash == dev.TokenHash {
				d.Devices[i] = dev
				return nil
			}
		}
		d.Devices = append(d.Devices, dev)
		return nil
	})
}

func (s *DeviceStore) ListByUser(ctx context.Context, userID string) ([]models.UserDevice, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	return d.Devices, nil
}

var _ repositories.DeviceRepository = (*DeviceStore)(nil)
