package models

import (
	"time"
)

// Device is a tracked piece of hardware identified by a server assigned id.
type Device struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement" example:"1"`
	Name         string    `json:"name" gorm:"not null" example:"IPhone"`
	Brand        string    `json:"brand" gorm:"not null" example:"Apple"`
	CreationTime time.Time `json:"creationTime" gorm:"not null" example:"2024-10-14T08:30:00.123456Z"`
}

func (Device) TableName() string {
	return "devices"
}

// AddDevice is the information needed to add a new Device.
type AddDevice struct {
	Name  string `json:"name" binding:"notblank" example:"IPhone"`
	Brand string `json:"brand" binding:"notblank" example:"Apple"`
}

// UpdateDevice is the information needed to update a Device.
// A nil field leaves the stored value unchanged.
type UpdateDevice struct {
	Name  *string `json:"name,omitempty" binding:"omitnil,notblank" example:"IPhone 15"`
	Brand *string `json:"brand,omitempty" binding:"omitnil,notblank" example:"Samsung"`
}
