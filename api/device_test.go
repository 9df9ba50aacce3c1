package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/garnizeh/fallwatch/pkg/models"
)

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(res.Body).Decode(&m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

func TestDevSyncThenWebSync(t *testing.T) {
	srv, repo := setupServer(t)
	ctx := context.Background()

	pid, err := repo.CreatePerson(ctx, &models.Person{Fullname: "Hal Monitor"})
	if err != nil {
		t.Fatalf("create person: %v", err)
	}
	if err := repo.EnsureDevice(ctx, pid); err != nil {
		t.Fatalf("ensure device: %v", err)
	}

	for i := 0; i < 2; i++ {
		res := postJSON(t, fmt.Sprintf("%s/dev/sync/%d", srv.URL, pid), `{"falls_r":1,"falls_c":0}`)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("sync: expected 200 got %d", res.StatusCode)
		}
		body := decodeBody(t, res)
		if body["ok"] != true {
			t.Fatalf("sync: expected ok:true got %v", body)
		}
	}

	res, err := http.Get(fmt.Sprintf("%s/web/person/data/%d/sync", srv.URL, pid))
	if err != nil {
		t.Fatalf("get sync status: %v", err)
	}
	body := decodeBody(t, res)
	if body["ok"] != true {
		t.Fatalf("expected ok:true got %v", body)
	}
	if body["falls_real"].(float64) != 2 || body["falls_cancelled"].(float64) != 0 {
		t.Fatalf("expected counters 2/0 got %v", body)
	}
	if body["sync_time"] == nil {
		t.Fatalf("expected sync_time to be set after syncs")
	}
}

func TestDevSyncMissingDeviceStillReportsOK(t *testing.T) {
	srv, _ := setupServer(t)

	// firmware expects {ok:true} even when nothing matched
	res := postJSON(t, srv.URL+"/dev/sync/999", `{"falls_r":1,"falls_c":0}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body := decodeBody(t, res)
	if body["ok"] != true {
		t.Fatalf("expected ok:true got %v", body)
	}
}

func TestDevSyncRejectsNonNumericCounters(t *testing.T) {
	srv, _ := setupServer(t)

	for _, payload := range []string{
		`{"falls_r":"one","falls_c":0}`,
		`{"falls_r":1}`,
		`{"falls_r":1.5,"falls_c":0}`,
		`not json`,
	} {
		res := postJSON(t, srv.URL+"/dev/sync/1", payload)
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("payload %q: expected 400 got %d", payload, res.StatusCode)
		}
		body := decodeBody(t, res)
		if body["ok"] != false {
			t.Fatalf("payload %q: expected ok:false got %v", payload, body)
		}
	}
}

func TestDevSyncInvalidPersonID(t *testing.T) {
	srv, _ := setupServer(t)

	res := postJSON(t, srv.URL+"/dev/sync/abc", `{"falls_r":1,"falls_c":0}`)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
	res.Body.Close()
}

func TestDevConfig(t *testing.T) {
	srv, repo := setupServer(t)
	ctx := context.Background()

	// nonexistent person
	res, err := http.Get(srv.URL + "/dev/config/999")
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	body := decodeBody(t, res)
	if body["ok"] != false || body["error"] != "Device not found" {
		t.Fatalf("expected device-not-found reply, got %v", body)
	}

	pid, err := repo.CreatePerson(ctx, &models.Person{Fullname: "Ida Monitor"})
	if err != nil {
		t.Fatalf("create person: %v", err)
	}
	if err := repo.EnsureDevice(ctx, pid); err != nil {
		t.Fatalf("ensure device: %v", err)
	}
	if err := repo.SetPhoneNumber(ctx, pid, "555-0000"); err != nil {
		t.Fatalf("set phone: %v", err)
	}

	res, err = http.Get(fmt.Sprintf("%s/dev/config/%d", srv.URL, pid))
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	body = decodeBody(t, res)
	if body["ok"] != true || body["phone_nr"] != "555-0000" || body["timeout"].(float64) != 10 {
		t.Fatalf("unexpected config reply: %v", body)
	}
}
