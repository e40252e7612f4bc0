package server

import "net/http"

// routes wires the public and authenticated endpoints. Parameterized routes
// use Go 1.22 method patterns so the metrics middleware can label by pattern
// instead of by concrete path.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET "+metricsPath, s.capabilities.Metrics.Handler())

	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	authed := func(handler http.HandlerFunc) http.Handler {
		return s.capabilities.Auth.Middleware(s.rejectUnauthorized, handler)
	}
	mux.Handle("POST /api/videos", authed(s.handleSaveVideo))
	mux.Handle("GET /api/videos", authed(s.handleListVideos))
	mux.Handle("GET /api/videos/{id}", authed(s.handleGetVideo))
	mux.Handle("PUT /api/videos/{id}", authed(s.handleUpdateVideo))
	mux.Handle("PATCH /api/videos/{id}", authed(s.handleUpdateVideo))
	mux.Handle("DELETE /api/videos/{id}", authed(s.handleDeleteVideo))

	return mux
}
