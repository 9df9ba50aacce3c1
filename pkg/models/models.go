package models

import "database/sql"

// Domain models matching the database schema in db/migrations/0001_init.sql

type User struct {
	UID      int64  `json:"uid" db:"uid"`
	Username string `json:"username" db:"username"`
	Pass     string `json:"-" db:"pass"`
}

type Person struct {
	PersonID int64         `json:"person_id" db:"person_id"`
	UID      sql.NullInt64 `json:"uid,omitempty" db:"uid"`
	Fullname string        `json:"fullname" db:"fullname"`
}

type Device struct {
	DevID          int64  `json:"dev_id" db:"dev_id"`
	PersonID       int64  `json:"person_id" db:"person_id"`
	LastLogged     int64  `json:"last_logged" db:"last_logged"`
	FallsReal      int64  `json:"falls_real" db:"falls_real"`
	FallsCancelled int64  `json:"falls_cancelled" db:"falls_cancelled"`
	PhoneNr        string `json:"phone_nr" db:"phone_nr"`
	Timeout        int64  `json:"timeout" db:"timeout"`
}

// DeviceConfig is the slice of a device the firmware fetches on boot.
type DeviceConfig struct {
	PhoneNr string `json:"phone_nr"`
	Timeout int64  `json:"timeout"`
}

// DeviceStatus is the null-defaulted view used by name lookups: phone_nr
// falls back to "", timeout to 10 and counters to 0.
type DeviceStatus struct {
	PhoneNr        string `json:"phone_nr"`
	Timeout        int64  `json:"timeout"`
	FallsReal      int64  `json:"falls_real"`
	FallsCancelled int64  `json:"falls_cancelled"`
}

// SyncStatus reports the fall counters and the last sync time. LastLogged
// stays null when the device never logged.
type SyncStatus struct {
	FallsReal      int64         `json:"falls_real"`
	FallsCancelled int64         `json:"falls_cancelled"`
	LastLogged     sql.NullInt64 `json:"-"`
}
