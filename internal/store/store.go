package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parking-api/internal/model"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for all database operations.
type Store interface {
	ListParkings(ctx context.Context) ([]model.Parking, error)
	PageParkings(ctx context.Context, page, pageSize int) ([]model.Parking, int64, error)
	GetParking(ctx context.Context, id int64) (model.Parking, error)
	GetParkingDetail(ctx context.Context, id int64) (model.ParkingDetail, error)
	CreateParking(ctx context.Context, detail *model.ParkingDetail) error
	UpdateParking(ctx context.Context, id int64, mutate func(*model.ParkingDetail) error) (model.ParkingDetail, bool, error)
	DeleteParking(ctx context.Context, id int64) error
	SetQRCode(ctx context.Context, id int64, qrcode string) error

	PutSubscription(ctx context.Context, sub model.PushSubscription, parkingIDs []int64) error
	GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscribersOf(ctx context.Context, parkingID int64) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ListParkings(ctx context.Context) ([]model.Parking, error) {
	parkings := []model.Parking{}
	if err := s.db.WithContext(ctx).Order("id").Find(&parkings).Error; err != nil {
		return nil, fmt.Errorf("failed to list parkings: %w", err)
	}
	return parkings, nil
}

// PageParkings returns one 1-based page ordered by id, and the total row count.
// A page past the last one is empty.
func (s *gormStore) PageParkings(ctx context.Context, page, pageSize int) ([]model.Parking, int64, error) {
	if page < 1 || pageSize < 1 {
		return nil, 0, fmt.Errorf("invalid page %d of size %d", page, pageSize)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Parking{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count parkings: %w", err)
	}

	parkings := []model.Parking{}
	if int64(page) > int64(model.TotalPages(total, pageSize)) {
		return parkings, total, nil
	}
	if err := s.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&parkings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to page parkings: %w", err)
	}
	return parkings, total, nil
}

func (s *gormStore) GetParking(ctx context.Context, id int64) (model.Parking, error) {
	var parking model.Parking
	if err := s.db.WithContext(ctx).First(&parking, id).Error; err != nil {
		return model.Parking{}, notFound(err, "parking %d", id)
	}
	return parking, nil
}

func (s *gormStore) GetParkingDetail(ctx context.Context, id int64) (model.ParkingDetail, error) {
	var detail model.ParkingDetail
	if err := s.db.WithContext(ctx).First(&detail, id).Error; err != nil {
		return model.ParkingDetail{}, notFound(err, "parking %d", id)
	}
	detail.Normalize()
	return detail, nil
}

func (s *gormStore) CreateParking(ctx context.Context, detail *model.ParkingDetail) error {
	detail.Normalize()
	if err := s.db.WithContext(ctx).Create(detail).Error; err != nil {
		return fmt.Errorf("failed to create parking: %w", err)
	}
	return nil
}

// UpdateParking loads the row, lets mutate change it and saves it in one
// transaction. The boolean reports whether the parking went from no free
// spaces to at least one.
func (s *gormStore) UpdateParking(ctx context.Context, id int64, mutate func(*model.ParkingDetail) error) (model.ParkingDetail, bool, error) {
	var updated model.ParkingDetail
	var becameAvailable bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return notFound(err, "parking %d", id)
		}
		before := updated.AvailableSpaces

		if err := mutate(&updated); err != nil {
			return err
		}
		updated.ID = id
		updated.Normalize()

		if err := tx.Save(&updated).Error; err != nil {
			return fmt.Errorf("failed to update parking %d: %w", id, err)
		}
		becameAvailable = before == 0 && updated.AvailableSpaces > 0
		return nil
	})
	if err != nil {
		return model.ParkingDetail{}, false, err
	}
	return updated, becameAvailable, nil
}

func (s *gormStore) DeleteParking(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM subscription_parking_mapping WHERE parking_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink subscriptions of parking %d: %w", id, err)
		}
		res := tx.Delete(&model.ParkingDetail{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete parking %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("parking %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (s *gormStore) SetQRCode(ctx context.Context, id int64, qrcode string) error {
	res := s.db.WithContext(ctx).Model(&model.ParkingDetail{}).Where("id = ?", id).Update("qrcode", qrcode)
	if res.Error != nil {
		return fmt.Errorf("failed to store qrcode of parking %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("parking %d: %w", id, ErrNotFound)
	}
	return nil
}

// PutSubscription creates or replaces a subscription and its watched parkings.
func (s *gormStore) PutSubscription(ctx context.Context, sub model.PushSubscription, parkingIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Omit("Parkings").Create(&sub).Error; err != nil {
			return err
		}

		parkings := []*model.ParkingDetail{}
		if len(parkingIDs) > 0 {
			if err := tx.Find(&parkings, parkingIDs).Error; err != nil {
				return err
			}
		}

		return tx.Model(&sub).Association("Parkings").Replace(parkings)
	})
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (model.PushSubscription, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).Preload("Parkings").First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		return model.PushSubscription{}, notFound(err, "subscription %q", endpoint)
	}
	return sub, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := model.PushSubscription{Endpoint: endpoint}
		if err := tx.Model(&sub).Association("Parkings").Clear(); err != nil {
			return err
		}
		return tx.Delete(&sub).Error
	})
}

// SubscribersOf returns the subscriptions watching a parking.
func (s *gormStore) SubscribersOf(ctx context.Context, parkingID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_parking_mapping spm ON spm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("spm.parking_id = ?", parkingID).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	log.Printf("Error loading "+format+": %v", append(args, err)...)
	return err
}
