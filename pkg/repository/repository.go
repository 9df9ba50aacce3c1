package repository

import (
	"context"

	"github.com/garnizeh/fallwatch/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type PersonRepo interface {
	CreatePerson(ctx context.Context, p *models.Person) (int64, error)
	GetPersonByID(ctx context.Context, personID int64) (*models.Person, error)
	// FindPersonByFullname returns the lowest person_id matching fullname,
	// or nil when nobody matches. Fullnames are not unique in the schema;
	// first match wins.
	FindPersonByFullname(ctx context.Context, fullname string) (*models.Person, error)
}

type DeviceRepo interface {
	// EnsureDevice creates the device row for personID with zeroed fall
	// counters unless one already exists. Idempotent.
	EnsureDevice(ctx context.Context, personID int64) error
	IncrementFallCounts(ctx context.Context, personID, fallsR, fallsC int64) error
	SetPhoneNumber(ctx context.Context, personID int64, phoneNr string) error
	SetTimeout(ctx context.Context, personID, timeout int64) error
	GetDeviceConfig(ctx context.Context, personID int64) (*models.DeviceConfig, error)
	GetDeviceStatus(ctx context.Context, personID int64) (*models.DeviceStatus, error)
	GetSyncStatus(ctx context.Context, personID int64) (*models.SyncStatus, error)
}
