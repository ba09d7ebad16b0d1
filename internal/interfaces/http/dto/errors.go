package dto

import (
	"net/http"

	"github.com/watchlist/backend/internal/domain/shared"
)

// Fixed client-facing messages per operation
const (
	MsgListFailed   = "Failed to get movies"
	MsgAdded        = "Movie added successfully"
	MsgDuplicate    = "Movie with the same title and year already exists"
	MsgAddFailed    = "Failed to add movie"
	MsgToggled      = "Watched status toggled"
	MsgToggleFailed = "Failed to toggle watched status"
	MsgDeleted      = "Movie deleted"
	MsgDeleteFailed = "Failed to delete movie"
	MsgRateLimited  = "Too many requests, please try again later"
	MsgBodyTooLarge = "Request body too large"
	MsgNotFound     = "Not found"
)

// ErrorKindHTTPStatus maps error kinds to HTTP status codes.
// Only a duplicate is distinguishable on the wire; everything else is a 400.
var ErrorKindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindConflict:     http.StatusConflict,
	shared.KindNotFound:     http.StatusBadRequest,
	shared.KindStorageFault: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error kind.
// Unknown kinds map to 400.
func GetHTTPStatus(kind shared.ErrorKind) int {
	if status, ok := ErrorKindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusBadRequest
}
