package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/thermostat/internal/device"
	"github.com/sweeney/thermostat/internal/status"
)

type fakeSink struct {
	commands []device.Command
}

func (f *fakeSink) Submit(cmd device.Command) {
	f.commands = append(f.commands, cmd)
}

func newTestServer(token string) (*Server, *status.Tracker, *fakeSink) {
	tracker := status.NewTracker(time.Now().Add(-90*time.Second), status.Config{
		PollMs:   100,
		SampleMs: 2000,
		Broker:   "tcp://broker:1883",
		HTTPAddr: ":8080",
	})
	sink := &fakeSink{}
	return New(":0", tracker, sink, token), tracker, sink
}

func TestIndexPageNormalMode(t *testing.T) {
	srv, tracker, _ := newTestServer("")
	tracker.Update(status.State{
		Mode:       "NORMAL",
		Temp:       68.5,
		TempValid:  true,
		Hum:        41.2,
		HumValid:   true,
		Target:     70,
		HeaterOn:   true,
		Armed:      true,
		Brightness: 1.0,
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"68.5", "41.2", "70", "ON", "tcp://broker:1883"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "/setup") {
		t.Error("normal-mode page should not contain the provisioning form")
	}
}

func TestIndexPageProvisioningMode(t *testing.T) {
	srv, tracker, _ := newTestServer("")
	tracker.Update(status.State{Mode: "PROVISIONING"})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `action="/setup"`) {
		t.Error("provisioning page missing the setup form")
	}
}

func TestIndexPageFaultMarker(t *testing.T) {
	srv, tracker, _ := newTestServer("")
	tracker.Update(status.State{Mode: "NORMAL", TempValid: false, HumValid: true, Hum: 50})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "FAULT") {
		t.Error("page should mark an invalid temperature as FAULT")
	}
}

func TestIndexUnknownPathIs404(t *testing.T) {
	srv, _, _ := newTestServer("")

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestJSONEndpoint(t *testing.T) {
	srv, tracker, _ := newTestServer("")
	tracker.Update(status.State{
		Mode:      "NORMAL",
		Temp:      69.8,
		TempValid: true,
		HumValid:  false,
		Target:    70,
		HeaterOn:  true,
		Armed:     true,
	})

	req := httptest.NewRequest("GET", "/index.json", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}

	var parsed status.StatusJSON
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	inner := parsed.Status
	if inner.Temperature == nil || *inner.Temperature != 69.8 {
		t.Errorf("temperature: got %v", inner.Temperature)
	}
	if inner.Humidity != nil {
		t.Errorf("faulted humidity should be null, got %v", *inner.Humidity)
	}
	if !inner.HumidityFault || inner.TemperatureFault {
		t.Errorf("fault flags: temp=%v hum=%v", inner.TemperatureFault, inner.HumidityFault)
	}
	if !inner.HeaterOn || inner.Target != 70 {
		t.Errorf("heater/target: %+v", inner)
	}
	if inner.UptimeSeconds < 89 {
		t.Errorf("uptime: got %d, want ~90", inner.UptimeSeconds)
	}
}

func TestCommandAccepted(t *testing.T) {
	srv, _, sink := newTestServer("secret")

	req := httptest.NewRequest("POST", "/api/command",
		strings.NewReader(`{"action":"adjust_target","delta":1}`))
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202: %s", w.Code, w.Body.String())
	}
	if len(sink.commands) != 1 {
		t.Fatalf("submitted: got %d commands, want 1", len(sink.commands))
	}
	if got := sink.commands[0]; got.Kind != device.CmdAdjustTarget || got.Delta != 1 {
		t.Errorf("command: %+v", got)
	}
}

func TestCommandUnauthorized(t *testing.T) {
	srv, _, sink := newTestServer("secret")

	for _, header := range []string{"", "Bearer wrong", "secret"} {
		req := httptest.NewRequest("POST", "/api/command",
			strings.NewReader(`{"action":"toggle_armed"}`))
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		srv.httpServer.Handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: got %d, want 401", header, w.Code)
		}
	}
	if len(sink.commands) != 0 {
		t.Errorf("rejected requests must not submit commands, got %d", len(sink.commands))
	}
}

func TestCommandEmptyTokenDisablesAuth(t *testing.T) {
	srv, _, sink := newTestServer("")

	req := httptest.NewRequest("POST", "/api/command",
		strings.NewReader(`{"action":"toggle_armed"}`))
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202", w.Code)
	}
	if len(sink.commands) != 1 || sink.commands[0].Kind != device.CmdToggleArmed {
		t.Errorf("commands: %+v", sink.commands)
	}
}

func TestCommandBadRequests(t *testing.T) {
	srv, _, sink := newTestServer("")

	bodies := []string{
		`not json`,
		`{"action":"warp_drive"}`,
		`{"action":"adjust_target","delta":5}`,
		`{"action":"set_display_power","level":1.5}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest("POST", "/api/command", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.httpServer.Handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: got %d, want 400", body, w.Code)
		}
	}
	if len(sink.commands) != 0 {
		t.Errorf("bad requests must not submit commands, got %d", len(sink.commands))
	}
}

func TestCommandGetNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer("")

	req := httptest.NewRequest("GET", "/api/command", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", w.Code)
	}
}

func TestSetupSubmitsIdentity(t *testing.T) {
	srv, tracker, sink := newTestServer("")
	tracker.Update(status.State{Mode: "PROVISIONING"})

	form := url.Values{"name": {"HomeNet"}, "secret": {"hunter2"}}
	req := httptest.NewRequest("POST", "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "settings saved") {
		t.Errorf("response: %q", w.Body.String())
	}
	if len(sink.commands) != 1 {
		t.Fatalf("submitted: got %d commands, want 1", len(sink.commands))
	}
	got := sink.commands[0]
	if got.Kind != device.CmdSubmitIdentity || got.Name != "HomeNet" || got.Secret != "hunter2" {
		t.Errorf("command: %+v", got)
	}
}

func TestSetupRequiresTokenOutsideProvisioning(t *testing.T) {
	srv, tracker, sink := newTestServer("secret")
	tracker.Update(status.State{Mode: "NORMAL"})

	form := url.Values{"name": {"EvilNet"}, "secret": {"pwned"}}

	// Unauthenticated: rejected with no state mutation.
	req := httptest.NewRequest("POST", "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
	if len(sink.commands) != 0 {
		t.Fatalf("rejected setup must not submit, got %d commands", len(sink.commands))
	}

	// The bearer token opens it, same as /api/command.
	req = httptest.NewRequest("POST", "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("authorized status: got %d, want 202", w.Code)
	}
	if len(sink.commands) != 1 {
		t.Errorf("authorized setup should submit, got %d commands", len(sink.commands))
	}
}

func TestSetupOpenDuringProvisioning(t *testing.T) {
	// In provisioning the captive form must work without a token even
	// when one is configured.
	srv, tracker, sink := newTestServer("secret")
	tracker.Update(status.State{Mode: "PROVISIONING"})

	form := url.Values{"name": {"HomeNet"}, "secret": {"hunter2"}}
	req := httptest.NewRequest("POST", "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202: %s", w.Code, w.Body.String())
	}
	if len(sink.commands) != 1 {
		t.Errorf("submitted: got %d commands, want 1", len(sink.commands))
	}
}

func TestSetupRejectsShortName(t *testing.T) {
	srv, tracker, sink := newTestServer("")
	tracker.Update(status.State{Mode: "PROVISIONING"})

	form := url.Values{"name": {"x"}, "secret": {"hunter2"}}
	req := httptest.NewRequest("POST", "/setup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
	if len(sink.commands) != 0 {
		t.Errorf("rejected setup must not submit, got %d", len(sink.commands))
	}
}
