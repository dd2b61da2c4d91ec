package api

import (
	"reflect"
	"strings"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/go-playground/validator/v10"

	"parking-api/config"
	"parking-api/internal/auth"
	"parking-api/internal/store"
)

// Notifier queues availability notifications for a parking.
type Notifier interface {
	Dispatch(parkingID int64)
}

// Options carries the dependencies of the API handlers.
type Options struct {
	Store    store.Store
	Issuer   *auth.Issuer
	WebPush  *webpush.Options
	Notifier Notifier
	Server   config.ServerConfig
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	issuer    *auth.Issuer
	webpush   *webpush.Options
	notifier  Notifier
	validate  *validator.Validate
	publicURL string
	qrSize    int
}

// NewHandler creates a new API handler.
func NewHandler(opts Options) *Handler {
	return &Handler{
		store:     opts.Store,
		issuer:    opts.Issuer,
		webpush:   opts.WebPush,
		notifier:  opts.Notifier,
		validate:  newValidator(),
		publicURL: opts.Server.PublicURL,
		qrSize:    opts.Server.QRCodeSize,
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
