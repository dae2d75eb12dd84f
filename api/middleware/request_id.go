package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

const maxRequestIDLen = 128

// RequestID keeps a well-formed client X-Request-Id, or mints a uuid, and
// echoes it on the response and in every log line of the request.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(types.RequestIDHeader)
			if !validRequestID(reqID) {
				reqID = uuid.NewString()
			}
			w.Header().Set(types.RequestIDHeader, reqID)

			if logg != nil {
				r = r.WithContext(logg.WithRequestID(r.Context(), reqID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// validRequestID accepts printable ASCII without spaces, so a client id is
// safe to echo into headers and logs.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
