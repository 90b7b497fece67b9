package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/hardpoint/pkg/pipeline"
)

const serveTestDesign = `
[vehicle]
wheelbase = 1525.0
weight_distribution = 50.0
sprung_mass = 230.0
cg = [0.0, 0.0, 215.9]
ride_height = 50.8
rake = 0.0
loaded_radius = 199.39

[linkage]
type = "double-wishbone"
axle = "front"
track = 1220.0
toe = 0.5
camber = -1.6
camber_gain = -0.0393701
caster = 3.0
caster_gain = 0.00984252
kpi = 3.0
scrub = 0.0
roll_center = 15.0
pitch_center = 10.0

[bounds]
LAF = [[127.0, 127.0], [203.2, 220.98], [12.7, 38.1]]
LAR = [[-127.0, -127.0], [0.0, 0.0], [12.7, 38.1]]
UAF = [[0.0, 0.0], [220.98, 254.0], [152.4, 203.2]]
UAR = [[0.0, 0.0], [0.0, 0.0], [152.4, 203.2]]
TA = [[50.8, 76.2], [220.98, 220.98], [63.5, 69.85]]
LB = [[0.0, 0.0], [-22.352, -22.352], [-82.55, -68.58]]
UB = [[0.0, 0.0], [-44.45, -22.352], [76.2, 88.9]]
TB = [[63.5, 72.39], [-31.75, -22.352], [-38.1, 12.7]]
`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := New(io.Discard, LogInfo)
	runner := pipeline.NewRunner(nil, c.Logger)
	srv := httptest.NewServer(c.router(runner))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { runner.Close() })
	return srv
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestPointsEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/points")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var points []struct {
		Key   string `json:"key"`
		Frame string `json:"frame"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		t.Fatal(err)
	}
	if len(points) != 8 {
		t.Fatalf("point count = %d, want 8", len(points))
	}
	if points[0].Key != "LAF" || points[0].Frame != "X" {
		t.Errorf("first point = %+v, want LAF in X", points[0])
	}
}

func TestSolveEndpoint(t *testing.T) {
	srv := testServer(t)

	req, _ := json.Marshal(pipeline.Options{
		Design:  serveTestDesign,
		Formats: []string{pipeline.FormatJSON},
	})
	resp, err := http.Post(srv.URL+"/api/v1/solve", "application/json", strings.NewReader(string(req)))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body solveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.ID == "" || body.SolveKey == "" {
		t.Error("missing id or solve key")
	}
	if body.Cached {
		t.Error("unexpected cache hit with null cache")
	}
	if !strings.Contains(body.Artifacts["json"], "frames") {
		t.Error("json artifact missing frame report")
	}
}

func TestSolveEndpointRejectsBadBody(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/solve", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSolveEndpointRejectsInvalidDesign(t *testing.T) {
	srv := testServer(t)

	req, _ := json.Marshal(pipeline.Options{Design: "[vehicle]\nwheelbase = -1.0\n"})
	resp, err := http.Post(srv.URL+"/api/v1/solve", "application/json", strings.NewReader(string(req)))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}
