package server

import (
	"errors"
	"net/http"
	"untile/api"
	untileImage "untile/pkg/image"
	"untile/pkg/seed"
	"untile/pkg/shuffle"
	"untile/pkg/tile"
)

var (
	errMissingSeed      = errors.New("either a seed or the source url of the image is required")
	errUndecodableImage = errors.New("image could not be decoded")
)

var (
	errRequestBodyDecode = api.Error{Error: "Error reading request body"}
	errInvalidImage      = api.Error{Code: "invalid_image", Error: "Invalid image supplied in request body"}
	errInvalidSeed       = api.Error{Code: "invalid_seed", Error: "The seed is empty or could not be derived from the source url"}
	errInvalidGeometry   = api.Error{Code: "invalid_geometry", Error: "The image can not be split into tiles of the requested size"}
	errGroupIntegrity    = api.Error{Code: "group_integrity", Error: "The tiles of the image do not form complete groups"}
	errUnsupportedFormat = api.Error{Code: "unsupported_format", Error: "Unsupported output format, supported formats are png, jpeg, gif and bmp"}
	errDescramble        = api.Error{Code: "descramble_error", Error: "An error occurred while reassembling the image"}
)

// errorResponse maps errors raised while reassembling a page to the status and body returned to the client
func errorResponse(err error) (int, api.Error) {
	switch {
	case errors.Is(err, errUndecodableImage):
		return http.StatusBadRequest, errInvalidImage
	case errors.Is(err, errMissingSeed), errors.Is(err, shuffle.ErrInvalidSeed),
		errors.Is(err, seed.ErrInvalidSeedInput), errors.Is(err, seed.ErrInvalidURL):
		return http.StatusBadRequest, errInvalidSeed
	case errors.Is(err, tile.ErrInvalidGeometry):
		return http.StatusBadRequest, errInvalidGeometry
	case errors.Is(err, tile.ErrGroupIntegrity):
		return http.StatusBadRequest, errGroupIntegrity
	case errors.Is(err, untileImage.ErrUnsupportedFormat):
		return http.StatusBadRequest, errUnsupportedFormat
	default:
		return http.StatusInternalServerError, errDescramble
	}
}
