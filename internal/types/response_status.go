package types

import (
	"fmt"
	"net/http"
)

const (
	ResponseStatusContinue           ResponseStatus = 100
	ResponseStatusSwitchingProtocols ResponseStatus = 101
	ResponseStatusEarlyHints         ResponseStatus = 103

	ResponseStatusOK             ResponseStatus = 200
	ResponseStatusCreated        ResponseStatus = 201
	ResponseStatusAccepted       ResponseStatus = 202
	ResponseStatusNoContent      ResponseStatus = 204
	ResponseStatusPartialContent ResponseStatus = 206

	ResponseStatusMovedPermanently  ResponseStatus = 301
	ResponseStatusFound             ResponseStatus = 302
	ResponseStatusSeeOther          ResponseStatus = 303
	ResponseStatusNotModified       ResponseStatus = 304
	ResponseStatusTemporaryRedirect ResponseStatus = 307
	ResponseStatusPermanentRedirect ResponseStatus = 308

	ResponseStatusBadRequest            ResponseStatus = 400
	ResponseStatusUnauthorized          ResponseStatus = 401
	ResponseStatusForbidden             ResponseStatus = 403
	ResponseStatusNotFound              ResponseStatus = 404
	ResponseStatusMethodNotAllowed      ResponseStatus = 405
	ResponseStatusConflict              ResponseStatus = 409
	ResponseStatusGone                  ResponseStatus = 410
	ResponseStatusRequestEntityTooLarge ResponseStatus = 413
	ResponseStatusUnsupportedMediaType  ResponseStatus = 415
	ResponseStatusTooManyRequests       ResponseStatus = 429

	ResponseStatusInternalServerError ResponseStatus = 500
	ResponseStatusNotImplemented      ResponseStatus = 501
	ResponseStatusBadGateway          ResponseStatus = 502
	ResponseStatusServiceUnavailable  ResponseStatus = 503
	ResponseStatusGatewayTimeout      ResponseStatus = 504
)

type ResponseStatus uint

// IsValid reports whether s is within the 100..599 range.
func (s ResponseStatus) IsValid() bool { return s >= 100 && s < 600 }

// Reason returns the standard reason phrase of the status, empty for unknown codes.
func (s ResponseStatus) Reason() ResponseReason { return ResponseReason(http.StatusText(int(s))) }

func (s ResponseStatus) String() string { return fmt.Sprintf("%d %s", s, s.Reason()) }

type ResponseReason string
