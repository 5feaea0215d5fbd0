package http

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestRouterEndpoints(t *testing.T) {
	server := newTestServer(t, &stubVerifier{})

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/api/reward")
	if err != nil {
		t.Fatalf("reward: %v", err)
	}
	defer resp.Body.Close()
	var tier struct {
		Threshold       int `json:"threshold"`
		BackgroundIndex int `json:"backgroundIndex"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tier); err != nil {
		t.Fatalf("decode reward: %v", err)
	}
	if tier.Threshold != 0 || tier.BackgroundIndex != 1 {
		t.Fatalf("expected entry tier, got %+v", tier)
	}
}
