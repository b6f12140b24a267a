package devserver

import (
	"net/http"
	"time"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all devserver routes.
func SetupRouter(handler *Handler, metrics *telemetry.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("patient-intake-devserver"))
	if metrics != nil {
		r.Use(metricsMiddleware(metrics))
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"patient-intake-devserver"}`))
	}).Methods("GET")

	r.HandleFunc("/api/patients", handler.CreatePatient).Methods("POST")
	r.HandleFunc("/api/patients/{id}", handler.GetPatient).Methods("GET")

	return r
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status, float64(time.Since(start).Milliseconds()))
		})
	}
}

// CORSMiddleware adds CORS headers so the web intake form can reach the
// devserver from a local frontend origin.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
