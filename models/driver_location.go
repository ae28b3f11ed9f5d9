package models

import "errors"

// DriverLocation is the single current-position record of one driver.
type DriverLocation struct {
	Base
	DriverID       string   `json:"driverId" gorm:"uniqueIndex;not null"`
	Latitude       float64  `json:"latitude" gorm:"not null;default:0"`
	Longitude      float64  `json:"longitude" gorm:"not null;default:0"`
	Heading        *float64 `json:"heading"`
	Speed          *float64 `json:"speed"`
	IsAvailable    bool     `json:"isAvailable" gorm:"not null;default:false"`
	CurrentOrderID *string  `json:"currentOrderId"`
}

// Position is one location ping from the driver app.
type Position struct {
	Latitude  float64
	Longitude float64
	Heading   *float64
	Speed     *float64
}

func (p Position) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	if p.Heading != nil && (*p.Heading < 0 || *p.Heading > 360) {
		return errors.New("heading must be between 0 and 360")
	}
	if p.Speed != nil && *p.Speed < 0 {
		return errors.New("speed must not be negative")
	}
	return nil
}
