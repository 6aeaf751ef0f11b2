package middleware

import (
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/ojo-network/ohm-analyzer/config"
)

// Build returns the middleware chain shared by all API routes: CORS handling
// followed by request logging.
func Build(logger zerolog.Logger, cfg config.Server) alice.Chain {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            cfg.VerboseCORS,
	})

	return alice.New(c.Handler, RequestLogger(logger))
}

// RequestLogger logs every request at debug level once it has been served.
func RequestLogger(logger zerolog.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, req)

			logger.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", sw.status).
				Dur("duration", time.Since(start)).
				Msg("served request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
