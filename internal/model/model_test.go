package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		name     string
		total    int64
		pageSize int
		expected int
	}{
		{name: "Partial last page", total: 25, pageSize: 10, expected: 3},
		{name: "Exact pages", total: 20, pageSize: 10, expected: 2},
		{name: "Single item", total: 1, pageSize: 10, expected: 1},
		{name: "Empty", total: 0, pageSize: 10, expected: 0},
		{name: "Zero page size", total: 5, pageSize: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TotalPages(tc.total, tc.pageSize))
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	page := NewPaginationResponse([]Parking{{ID: 1}, {ID: 2}}, 25, 3, 10)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Results, 2)

	empty := NewPaginationResponse[Parking](nil, 0, 1, 10)
	body, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"page":1,"pageSize":10,"results":[],"totalPages":0}`, string(body))
}

func TestParkingDetail_JSONShape(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	detail := ParkingDetail{
		Parking: Parking{
			ID:        7,
			Name:      "东门停车场",
			Address:   "学院路 1 号",
			CreatedAt: created,
			UpdatedAt: created,
		},
		AvailableSpaces: 3,
		TotalSpaces:     40,
		Price:           5.5,
		Content:         "24 小时开放",
	}
	detail.Normalize()

	body, err := json.Marshal(detail)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, float64(7), fields["id"])
	assert.Equal(t, "东门停车场", fields["name"])
	assert.Equal(t, []any{}, fields["table"])
	assert.Nil(t, fields["qrcode"])
	assert.Equal(t, float64(3), fields["availableSpaces"])
	assert.Equal(t, float64(40), fields["totalSpaces"])
	assert.Equal(t, 5.5, fields["price"])
	assert.Contains(t, fields, "createdAt")
	assert.Contains(t, fields, "updatedAt")
	assert.NotContains(t, fields, "Parking")
}

func TestUpdateParkingRequest_Apply(t *testing.T) {
	detail := ParkingDetail{
		Parking:         Parking{ID: 1, Name: "old", Address: "addr"},
		AvailableSpaces: 0,
		TotalSpaces:     10,
	}
	name := "new"
	spaces := 4
	UpdateParkingRequest{Name: &name, AvailableSpaces: &spaces}.Apply(&detail)

	assert.Equal(t, "new", detail.Name)
	assert.Equal(t, "addr", detail.Address)
	assert.Equal(t, 4, detail.AvailableSpaces)
	assert.Equal(t, 10, detail.TotalSpaces)
}
