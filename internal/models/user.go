package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AddressLocationOff is stored when a user disables location sharing.
const AddressLocationOff = "Location off"

// UserStatus is a user's presence status shown on the map.
type UserStatus string

const (
	UserStatusFree UserStatus = "free"
	UserStatusBusy UserStatus = "busy"
	UserStatusAway UserStatus = "away"
)

// FavoriteLocation is a user-saved spot for quick gift placement.
type FavoriteLocation struct {
	Label   string  `json:"label"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// FavoriteLocations stores the list as JSONB.
type FavoriteLocations []FavoriteLocation

func (f FavoriteLocations) Value() (driver.Value, error) {
	if f == nil {
		f = FavoriteLocations{}
	}
	return json.Marshal(f)
}

func (f *FavoriteLocations) Scan(src interface{}) error {
	return scanJSON(f, src)
}

// User is a friend profile with presence data. Location fields are mutated
// only by the owning user and read by everyone else.
type User struct {
	ID                int               `db:"id" json:"id"`
	Username          string            `db:"username" json:"username"`
	Lat               *float64          `db:"lat" json:"lat,omitempty"`
	Lon               *float64          `db:"lon" json:"lon,omitempty"`
	Address           string            `db:"address" json:"address"`
	Status            UserStatus        `db:"status" json:"status"`
	FavoriteLocations FavoriteLocations `db:"favorite_locations" json:"favorite_locations"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}
