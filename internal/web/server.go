// Package web provides the HTTP surface of the thermostat daemon: the
// status page, the telemetry endpoint, the authenticated command API, and
// the provisioning endpoint.
package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/sweeney/thermostat/internal/api"
	"github.com/sweeney/thermostat/internal/device"
	"github.com/sweeney/thermostat/internal/status"
)

// CommandSink receives validated commands from the HTTP surface.
type CommandSink interface {
	Submit(cmd device.Command)
}

// Server serves the status page, telemetry, and commands over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	sink       CommandSink
	token      string
}

// New creates a Server. An empty token disables command authentication
// (intended for the provisioning access point only).
func New(addr string, tracker *status.Tracker, sink CommandSink, token string) *Server {
	s := &Server{tracker: tracker, sink: sink, token: token}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)
	mux.HandleFunc("/api/command", s.handleCommand)
	mux.HandleFunc("/setup", s.handleSetup)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}

// handleCommand accepts a JSON command, authenticated by bearer token.
// A rejected request mutates no state.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var c api.Command
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	cmd, err := api.ToDevice(c)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.sink.Submit(cmd)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"accepted":true}` + "\n"))
}

// handleSetup accepts the provisioning identity submission, as a form
// post so the captive setup page stays a plain HTML form. The device
// restarts after persisting, so the response is the last thing the
// client sees.
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// During provisioning the captive page has no way to present a token.
	// Outside it, rewriting the identity is just another command and
	// carries the same auth requirement as /api/command.
	if s.tracker.Snapshot().Mode != string(device.ModeProvisioning) && !s.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	name := r.PostFormValue("name")
	secret := r.PostFormValue("secret")

	cmd, err := api.ToDevice(api.Command{
		Action: api.ActionSubmitIdentity,
		Name:   name,
		Secret: secret,
	})
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.sink.Submit(cmd)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte("settings saved, device restarting\n"))
}

func (s *Server) authorized(r *http.Request) bool {
	if s.token == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+s.token
}
