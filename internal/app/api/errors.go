package api

import (
	"errors"
	"net/http"

	"github.com/edufront/edufront/internal/app/system/httpx"
)

// Sentinel errors for the status codes the UI distinguishes. Anything
// else stays an *httpx.HTTPError (backend fault) or a plain transport
// error (network fault).
var (
	ErrNotFound = errors.New("api: not found")
	ErrServer   = errors.New("api: server error")
)

// mapError attaches the matching sentinel to well-known status codes
// and passes everything else through unchanged. The original
// *httpx.HTTPError stays in the chain so the backend's message is
// still reachable.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		switch {
		case herr.StatusCode == http.StatusNotFound:
			return errors.Join(ErrNotFound, err)
		case herr.StatusCode >= 500:
			return errors.Join(ErrServer, err)
		}
	}
	return err
}

// ErrorText extracts the backend's own error message, if the failure
// carried one, for verbatim display alongside a generic fallback.
func ErrorText(err error) string {
	var herr *httpx.HTTPError
	if errors.As(err, &herr) && len(herr.Body) > 0 {
		return string(herr.Body)
	}
	return ""
}
