package compute

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/rest"
	"github.com/kbukum/restwire/wire"
)

const authToken = "118fb907-0786-4799-88f0-9a5b7963d1ab"

const flavorListJSON = `{"flavors":[
 {"id":"52415800-8b69-11e0-9b19-734f1195ff37","name":"256 MB Server",
  "links":[{"href":"http://servers.api.openstack.org/v1.1/1234/flavors/52415800-8b69-11e0-9b19-734f1195ff37","rel":"self"},
           {"href":"http://servers.api.openstack.org/1234/flavors/52415800-8b69-11e0-9b19-734f1195ff37","rel":"bookmark"}]},
 {"id":"52415800-8b69-11e0-9b19-734216894444","name":"512 MB Server"}
]}`

const flavorJSON = `{"flavor":{"id":"52415800-8b69-11e0-9b19-734f1195ff37","name":"256 MB Server",
 "ram":256,"disk":10,"vcpus":1,
 "links":[{"href":"http://servers.api.openstack.org/v1.1/1234/flavors/52415800-8b69-11e0-9b19-734f1195ff37","rel":"self"}]}}`

type fakeCompute struct {
	t      *testing.T
	logins atomic.Int32
	empty  bool
}

func (f *fakeCompute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if got := r.Header.Get("X-Auth-Token"); got != authToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if got := r.Header.Get("Accept"); got != "application/json" {
		f.t.Errorf("Accept = %q", got)
	}
	if f.empty {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var body string
	switch r.URL.Path {
	case "/v1.1/3456/flavors", "/v1.1/3456/flavors/detail":
		body = flavorListJSON
	case "/v1.1/3456/flavors/52415800-8b69-11e0-9b19-734f1195ff37":
		body = flavorJSON
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func newTestAPI(t *testing.T, f *fakeCompute) *API {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	login := func(context.Context) (string, time.Time, error) {
		f.logins.Add(1)
		return authToken, time.Now().Add(time.Hour), nil
	}
	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "test", io.Discard)
	api, err := New(srv.URL+"/v1.1/3456", login, rest.WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return api
}

func TestRegistry(t *testing.T) {
	reg := Registry()
	if reg.Len() != 3 {
		t.Fatalf("Len = %d, want 3", reg.Len())
	}
	for _, key := range []string{"listFlavors()", "listFlavorsInDetail()", "getFlavor(string)"} {
		if _, err := reg.Lookup(key); err != nil {
			t.Errorf("Lookup(%q): %v", key, err)
		}
	}
}

func TestOperations(t *testing.T) {
	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "test", io.Discard)
	api, err := New("https://compute.north.host/v1.1/3456", func(context.Context) (string, time.Time, error) {
		return authToken, time.Time{}, nil
	}, rest.WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name string
		args []any
		line string
	}{
		{"listFlavors", nil, "GET https://compute.north.host/v1.1/3456/flavors HTTP/1.1"},
		{"listFlavorsInDetail", nil, "GET https://compute.north.host/v1.1/3456/flavors/detail HTTP/1.1"},
		{"getFlavor", []any{"foo"}, "GET https://compute.north.host/v1.1/3456/flavors/foo HTTP/1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := api.Client().Prepare(context.Background(), tt.name, tt.args...)
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if got := req.RequestLine(); got != tt.line {
				t.Errorf("request line = %q, want %q", got, tt.line)
			}
			want := "Accept: application/json\nX-Auth-Token: " + authToken + "\n"
			if got := req.Headers.String(); got != want {
				t.Errorf("headers = %q, want %q", got, want)
			}
			if req.Payload != nil {
				t.Errorf("unexpected payload %+v", req.Payload)
			}
		})
	}
}

func TestAPI_ListFlavors(t *testing.T) {
	f := &fakeCompute{t: t}
	api := newTestAPI(t, f)
	ctx := context.Background()

	flavors, err := api.ListFlavors(ctx)
	if err != nil {
		t.Fatalf("ListFlavors: %v", err)
	}
	if len(flavors) != 2 {
		t.Fatalf("len = %d, want 2", len(flavors))
	}
	if flavors[0].Name != "256 MB Server" || flavors[1].ID != "52415800-8b69-11e0-9b19-734216894444" {
		t.Errorf("flavors = %+v", flavors)
	}
	if href, ok := flavors[0].Link("bookmark"); !ok || href == "" {
		t.Error("expected a bookmark link")
	}

	if _, err := api.ListFlavorsInDetail(ctx); err != nil {
		t.Fatalf("ListFlavorsInDetail: %v", err)
	}
	if n := f.logins.Load(); n != 1 {
		t.Errorf("logins = %d, want 1", n)
	}
}

func TestAPI_ListFlavorsNotFoundIsEmpty(t *testing.T) {
	api := newTestAPI(t, &fakeCompute{t: t, empty: true})

	flavors, err := api.ListFlavors(context.Background())
	if err != nil {
		t.Fatalf("ListFlavors: %v", err)
	}
	if flavors == nil || len(flavors) != 0 {
		t.Errorf("flavors = %#v, want empty", flavors)
	}
}

func TestAPI_GetFlavor(t *testing.T) {
	api := newTestAPI(t, &fakeCompute{t: t})
	ctx := context.Background()

	flavor, err := api.GetFlavor(ctx, "52415800-8b69-11e0-9b19-734f1195ff37")
	if err != nil {
		t.Fatalf("GetFlavor: %v", err)
	}
	if flavor == nil || flavor.RAM != 256 || flavor.Disk != 10 || flavor.VCPUs != 1 {
		t.Fatalf("flavor = %+v", flavor)
	}

	missing, err := api.GetFlavor(ctx, "foo")
	if err != nil || missing != nil {
		t.Errorf("GetFlavor(foo) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestAPI_Logout(t *testing.T) {
	f := &fakeCompute{t: t}
	api := newTestAPI(t, f)
	ctx := context.Background()

	if _, err := api.ListFlavors(ctx); err != nil {
		t.Fatal(err)
	}
	api.Logout()
	if _, err := api.ListFlavors(ctx); err != nil {
		t.Fatal(err)
	}
	if n := f.logins.Load(); n != 2 {
		t.Errorf("logins = %d, want 2", n)
	}
}

func TestAPI_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(&fakeCompute{t: t})
	t.Cleanup(srv.Close)

	log := logger.NewWithWriter(&logger.Config{Level: "error", Format: "json"}, "test", io.Discard)
	api, err := New(srv.URL+"/v1.1/3456", func(context.Context) (string, time.Time, error) {
		return "expired", time.Time{}, nil
	}, rest.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	_, err = api.ListFlavors(context.Background())
	if got := wire.StatusOf(err); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 (%v)", got, err)
	}
}
