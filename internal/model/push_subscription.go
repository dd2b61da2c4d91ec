package model

import "time"

// PushSubscription holds a browser push subscription and the parkings it watches.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Parkings []*ParkingDetail `gorm:"many2many:subscription_parking_mapping;joinForeignKey:PushSubscriptionEndpoint;joinReferences:ParkingID"`
}
