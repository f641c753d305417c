package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RegisterRoutes mounts the translator page. postsPerMinute <= 0 disables the
// per-IP limit on form submissions; metrics may be nil.
func RegisterRoutes(r chi.Router, h *Handler, postsPerMinute int, metrics http.Handler) {
	r.Use(
		middleware.RealIP,
		httputil.RecoverMiddleware,
	)

	r.Get("/", h.Index)
	r.Get("/badge", h.Badge)

	submit := r.With()
	if postsPerMinute > 0 {
		submit = r.With(httprate.LimitByIP(postsPerMinute, time.Minute))
	}
	submit.Post("/", h.Submit)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
}
