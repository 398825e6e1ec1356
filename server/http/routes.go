// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"staticd/server/static"
)

// routes registers a single catch-all GET route. chi answers any other
// method with 405.
func routes(cfg Config, access logrus.FieldLogger) *chi.Mux {
	r := chi.NewRouter()
	if access != nil {
		r.Use(accessLogger(access))
	}
	r.Use(middleware.Recoverer)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		r.Use(rateLimitMiddleware(rate.NewLimiter(cfg.RateLimit, burst)))
	}

	files := static.FileHandler(cfg.StaticDir, static.Options{
		AllowTraversal: cfg.AllowTraversal,
		Logger:         cfg.Logger,
	})
	r.Get("/*", files.ServeHTTP)
	return r
}
