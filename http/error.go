package http

import (
	"net/http"

	"github.com/fwojciec/pyroxy"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	pyroxy.EFORBIDDEN: http.StatusForbidden,
	pyroxy.EINTERNAL:  http.StatusInternalServerError,
	pyroxy.EINVALID:   http.StatusBadRequest,
	pyroxy.ENOTFOUND:  http.StatusNotFound,
}

// ErrorStatusCode returns the HTTP status code for an application error.
func ErrorStatusCode(err error) int {
	if code, ok := codes[pyroxy.ErrorCode(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// Error writes err as a plain text response. Internal errors are logged and
// their details kept out of the response.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := ErrorStatusCode(err)
	msg := pyroxy.ErrorMessage(err)
	if code == http.StatusInternalServerError {
		s.logger().Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "Internal error."
	}
	http.Error(w, msg, code)
}
