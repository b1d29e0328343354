// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api assembles the node's HTTP surface.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/rainbowpuffpuff/stakebonus/api/staking"
	"github.com/rainbowpuffpuff/stakebonus/log"
	"github.com/rainbowpuffpuff/stakebonus/runtime"
)

var logger = log.WithContext("pkg", "api")

// New returns the http handler of the node API.
func New(rt *runtime.Runtime, bank *runtime.Bank, allowedOrigins string, enableMetrics bool) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	staking.New(rt, bank).Mount(router, "")
	if enableMetrics {
		router.Use(metricsMiddleware)
	}
	router.Use(requestLoggerMiddleware)

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{"GET", "POST"}),
	)(handler)
	return handler.ServeHTTP
}

func requestLoggerMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("handling request", "method", r.Method, "url", r.URL.String())
		handler.ServeHTTP(w, r)
	})
}
