package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"parking-api/internal/model"
)

// Login exchanges credentials for a bearer token. The caller decides where
// the token is stored.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.Do(ctx, Request{Method: http.MethodPost, URL: LoginPrefix, Body: req}, &out)
	return out, err
}

// ListParkings handles GET /parking.
func (c *Client) ListParkings(ctx context.Context) (model.GetParkingsResponse, error) {
	var out model.GetParkingsResponse
	err := c.Do(ctx, Request{Method: http.MethodGet, URL: "/parking"}, &out)
	return out, err
}

// PageParkings handles GET /parking?page=&pageSize=.
func (c *Client) PageParkings(ctx context.Context, page, pageSize int) (model.ParkingResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var out model.ParkingResponse
	err := c.Do(ctx, Request{Method: http.MethodGet, URL: "/parking?" + q.Encode()}, &out)
	return out, err
}

// GetParking handles GET /parking/:id.
func (c *Client) GetParking(ctx context.Context, id int64) (model.GetParkingResponse, error) {
	var out model.GetParkingResponse
	err := c.Do(ctx, Request{Method: http.MethodGet, URL: parkingPath(id)}, &out)
	return out, err
}

// GetParkingDetail handles GET /parking/:id/detail.
func (c *Client) GetParkingDetail(ctx context.Context, id int64) (model.GetParkingDetailResponse, error) {
	var out model.GetParkingDetailResponse
	err := c.Do(ctx, Request{Method: http.MethodGet, URL: parkingPath(id) + "/detail"}, &out)
	return out, err
}

// CreateParking handles POST /parking.
func (c *Client) CreateParking(ctx context.Context, req model.CreateParkingRequest) (model.CreateParkingResponse, error) {
	var out model.CreateParkingResponse
	err := c.Do(ctx, Request{Method: http.MethodPost, URL: "/parking", Body: req}, &out)
	return out, err
}

// UpdateParking handles PUT /parking/:id.
func (c *Client) UpdateParking(ctx context.Context, id int64, req model.UpdateParkingRequest) (model.UpdateParkingResponse, error) {
	var out model.UpdateParkingResponse
	err := c.Do(ctx, Request{Method: http.MethodPut, URL: parkingPath(id), Body: req}, &out)
	return out, err
}

// DeleteParking handles DELETE /parking/:id, which answers 204 with no body.
func (c *Client) DeleteParking(ctx context.Context, id int64) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, URL: parkingPath(id)}, nil)
}

func parkingPath(id int64) string {
	return fmt.Sprintf("/parking/%d", id)
}
