package model

import "time"

// ErrorResponse is the body of a failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginationResponse is one page of a listing. Page is 1-based.
type PaginationResponse[T any] struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Results    []T   `json:"results"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginationResponse builds a page and derives TotalPages from total and pageSize.
func NewPaginationResponse[T any](results []T, total int64, page, pageSize int) PaginationResponse[T] {
	if results == nil {
		results = []T{}
	}
	return PaginationResponse[T]{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		Results:    results,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages returns ceil(total/pageSize), or 0 when pageSize is not positive.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}

// Named response contracts of the parking resource.
type (
	GetParkingsResponse      = []Parking
	GetParkingResponse       = Parking
	CreateParkingResponse    = Parking
	UpdateParkingResponse    = Parking
	DeleteParkingResponse    = struct{}
	ParkingResponse          = PaginationResponse[Parking]
	GetParkingDetailResponse = ParkingDetail
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued by POST /login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
