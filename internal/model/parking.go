package model

import "time"

// Parking is the list view of a parking facility.
type Parking struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Address   string     `json:"address" gorm:"size:256;not null"`
	Table     [][]string `json:"table" gorm:"serializer:json;type:text"`
	QRCode    *string    `json:"qrcode" gorm:"column:qrcode;type:text"`
	UpdatedAt time.Time  `json:"updatedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TableName maps both Parking and ParkingDetail onto the same rows.
func (Parking) TableName() string {
	return "parkings"
}

// ParkingDetail is a parking facility with its occupancy and pricing.
type ParkingDetail struct {
	Parking         `gorm:"embedded"`
	AvailableSpaces int     `json:"availableSpaces" gorm:"not null"`
	TotalSpaces     int     `json:"totalSpaces" gorm:"not null"`
	Price           float64 `json:"price" gorm:"not null"`
	Content         string  `json:"content" gorm:"type:text"`
}

// TableName maps ParkingDetail onto the parkings table.
func (ParkingDetail) TableName() string {
	return "parkings"
}

// Normalize makes sure the detail table encodes as an array, never null.
func (d *ParkingDetail) Normalize() {
	if d.Table == nil {
		d.Table = [][]string{}
	}
	for i, row := range d.Table {
		if row == nil {
			d.Table[i] = []string{}
		}
	}
}

// CreateParkingRequest is the body of POST /parking.
type CreateParkingRequest struct {
	Name            string     `json:"name" validate:"required,max=128"`
	Address         string     `json:"address" validate:"required,max=256"`
	Table           [][]string `json:"table"`
	AvailableSpaces int        `json:"availableSpaces" validate:"gte=0,ltefield=TotalSpaces"`
	TotalSpaces     int        `json:"totalSpaces" validate:"gte=0"`
	Price           float64    `json:"price" validate:"gte=0"`
	Content         string     `json:"content"`
}

// UpdateParkingRequest is the body of PUT /parking/:id. Nil fields are left unchanged.
type UpdateParkingRequest struct {
	Name            *string     `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Address         *string     `json:"address,omitempty" validate:"omitempty,min=1,max=256"`
	Table           *[][]string `json:"table,omitempty"`
	AvailableSpaces *int        `json:"availableSpaces,omitempty" validate:"omitempty,gte=0"`
	TotalSpaces     *int        `json:"totalSpaces,omitempty" validate:"omitempty,gte=0"`
	Price           *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Content         *string     `json:"content,omitempty"`
}

// Apply copies the non-nil fields of r onto d.
func (r UpdateParkingRequest) Apply(d *ParkingDetail) {
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.Address != nil {
		d.Address = *r.Address
	}
	if r.Table != nil {
		d.Table = *r.Table
	}
	if r.AvailableSpaces != nil {
		d.AvailableSpaces = *r.AvailableSpaces
	}
	if r.TotalSpaces != nil {
		d.TotalSpaces = *r.TotalSpaces
	}
	if r.Price != nil {
		d.Price = *r.Price
	}
	if r.Content != nil {
		d.Content = *r.Content
	}
}
