package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"parking-api/internal/model"
	"parking-api/internal/parse"
	"parking-api/internal/qr"
)

// ListParkings returns every parking, or one page of them when the page
// query parameter is present.
func (h *Handler) ListParkings(c *gin.Context) {
	rawPage, paged := c.GetQuery("page")
	if !paged {
		parkings, err := h.store.ListParkings(c.Request.Context())
		if err != nil {
			abortWithStoreError(c, "parkings", err)
			return
		}
		c.JSON(http.StatusOK, model.GetParkingsResponse(parkings))
		return
	}

	page, err := parse.ParsePage(rawPage, c.Query("pageSize"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	parkings, total, err := h.store.PageParkings(c.Request.Context(), page.Page, page.PageSize)
	if err != nil {
		abortWithStoreError(c, "parkings", err)
		return
	}
	c.JSON(http.StatusOK, model.NewPaginationResponse(parkings, total, page.Page, page.PageSize))
}

// GetParking returns the list view of one parking.
func (h *Handler) GetParking(c *gin.Context) {
	id, ok := h.parkingID(c)
	if !ok {
		return
	}

	parking, err := h.store.GetParking(c.Request.Context(), id)
	if err != nil {
		abortWithStoreError(c, "parking", err)
		return
	}
	c.JSON(http.StatusOK, parking)
}

// GetParkingDetail returns one parking with occupancy and pricing.
func (h *Handler) GetParkingDetail(c *gin.Context) {
	id, ok := h.parkingID(c)
	if !ok {
		return
	}

	detail, err := h.store.GetParkingDetail(c.Request.Context(), id)
	if err != nil {
		abortWithStoreError(c, "parking", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateParking stores a new parking and attaches its QR code.
func (h *Handler) CreateParking(c *gin.Context) {
	var req model.CreateParkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		abortWithError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	var detail model.ParkingDetail
	if err := copier.Copy(&detail, &req); err != nil {
		abortWithStoreError(c, "parking", err)
		return
	}

	ctx := c.Request.Context()
	if err := h.store.CreateParking(ctx, &detail); err != nil {
		abortWithStoreError(c, "parking", err)
		return
	}

	// A parking without a QR code is still usable.
	if uri, err := qr.DataURI(qr.ParkingURL(h.publicURL, detail.ID), h.qrSize); err != nil {
		log.Printf("Error rendering qrcode for parking %d: %v", detail.ID, err)
	} else if err := h.store.SetQRCode(ctx, detail.ID, uri); err != nil {
		log.Printf("Error storing qrcode for parking %d: %v", detail.ID, err)
	} else {
		detail.QRCode = &uri
	}

	c.JSON(http.StatusCreated, model.CreateParkingResponse(detail.Parking))
}

// UpdateParking applies the set fields of the request to a parking.
func (h *Handler) UpdateParking(c *gin.Context) {
	id, ok := h.parkingID(c)
	if !ok {
		return
	}

	var req model.UpdateParkingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		abortWithError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	updated, becameAvailable, err := h.store.UpdateParking(c.Request.Context(), id, func(d *model.ParkingDetail) error {
		req.Apply(d)
		if d.AvailableSpaces > d.TotalSpaces {
			return errSpacesExceedTotal
		}
		return nil
	})
	if err != nil {
		abortWithStoreError(c, "parking", err)
		return
	}

	if becameAvailable && h.notifier != nil {
		h.notifier.Dispatch(id)
	}

	c.JSON(http.StatusOK, model.UpdateParkingResponse(updated.Parking))
}

// DeleteParking removes a parking. It answers 204 with no body.
func (h *Handler) DeleteParking(c *gin.Context) {
	id, ok := h.parkingID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteParking(c.Request.Context(), id); err != nil {
		abortWithStoreError(c, "parking", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) parkingID(c *gin.Context) (int64, bool) {
	id, err := parse.ParseID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}
