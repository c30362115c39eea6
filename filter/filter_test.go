package filter

import (
	"context"
	stderrors "errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/sourcegraph/conc"

	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/wire"
)

func newRequest() *wire.Request {
	return &wire.Request{
		Method:    "GET",
		URI:       "http://localhost/api/admin/datacenters?limit=1",
		Headers:   wire.Headers{{Name: "Accept", Value: "application/xml"}},
		Operation: "listDatacenters()",
	}
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	p := NewPipeline(Header("X-A", "1"), nil, Header("X-B", "2"), Header("X-A", "3"))
	out, err := p.Apply(context.Background(), newRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Accept: application/xml\nX-B: 2\nX-A: 3\n"
	if got := out.Headers.String(); got != want {
		t.Errorf("headers = %q, want %q", got, want)
	}
	if p.Len() != 3 {
		t.Errorf("Len = %d", p.Len())
	}
}

func TestPipeline_DoesNotMutateInput(t *testing.T) {
	in := newRequest()
	_, err := NewPipeline(Header("X-A", "1"), Basic("u", "p")).Apply(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(in.Headers) != 1 {
		t.Errorf("input mutated: %q", in.Headers.String())
	}
}

func TestPipeline_ErrorAborts(t *testing.T) {
	var reached bool
	failing := Func(func(context.Context, *wire.Request) (*wire.Request, error) {
		return nil, stderrors.New("no session")
	})
	after := Func(func(_ context.Context, r *wire.Request) (*wire.Request, error) {
		reached = true
		return r, nil
	})
	_, err := NewPipeline(failing, after).Apply(context.Background(), newRequest())
	if err == nil || !strings.Contains(err.Error(), "no session") {
		t.Errorf("expected the filter error, got %v", err)
	}
	if reached {
		t.Error("pipeline continued after an error")
	}
}

func TestFilters_Idempotent(t *testing.T) {
	signer, err := NewJWTSigner(JWTConfig{Secret: "s3cret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	filters := map[string]Filter{
		"header":     Header("X-Env", "test"),
		"default":    DefaultHeader("Accept", "text/plain"),
		"basic":      Basic("admin", "xabiquo"),
		"token":      AuthTokenHeader(StaticToken("tok")),
		"bearer":     Bearer(StaticToken("tok")),
		"api key":    APIKeyQuery("key", "abc"),
		"request id": RequestID(),
		"jwt":        signer,
	}
	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			once, err := f.Apply(context.Background(), newRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			twice, err := f.Apply(context.Background(), once)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(twice.Headers) != len(once.Headers) || twice.URI != once.URI {
				t.Errorf("re-applying changed the request:\n%s\n%s", once, twice)
			}
		})
	}
}

func TestBasic_Header(t *testing.T) {
	out, _ := Basic("admin", "xabiquo").Apply(context.Background(), newRequest())
	if got := out.Headers.Get("Authorization"); got != "Basic YWRtaW46eGFiaXF1bw==" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestAPIKeyQuery_KeepsExistingQuery(t *testing.T) {
	out, err := APIKeyQuery("key", "a b").Apply(context.Background(), newRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URI != "http://localhost/api/admin/datacenters?limit=1&key=a+b" {
		t.Errorf("uri = %q", out.URI)
	}
}

func TestRequestID_PrefersContext(t *testing.T) {
	ctx := logger.ContextWithRequestID(context.Background(), "req-42")
	out, _ := RequestID().Apply(ctx, newRequest())
	if got := out.Headers.Get(HeaderRequestID); got != "req-42" {
		t.Errorf("request id = %q", got)
	}

	out, _ = RequestID().Apply(context.Background(), newRequest())
	if got := out.Headers.Get(HeaderRequestID); len(got) != 36 {
		t.Errorf("expected a uuid, got %q", got)
	}
}

func TestJWTSigner_ReplacesStaleToken(t *testing.T) {
	signer, err := NewJWTSigner(JWTConfig{Secret: "s3cret", Issuer: "restwire", TTL: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := newRequest().WithHeader("Authorization", "Bearer stale")
	out, err := signer.Apply(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values := out.Headers.Values("Authorization")
	if len(values) != 1 || values[0] == "Bearer stale" {
		t.Fatalf("Authorization = %v", values)
	}

	claims := &requestClaims{}
	_, err = gojwt.ParseWithClaims(strings.TrimPrefix(values[0], "Bearer "), claims,
		func(*gojwt.Token) (any, error) { return []byte("s3cret"), nil },
		gojwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Issuer != "restwire" || claims.Operation != "listDatacenters()" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAuthConfig_Filter(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *AuthConfig
		header string
		want   string
	}{
		{"bearer", BearerAuth("t"), "Authorization", "Bearer t"},
		{"basic", BasicAuth("u", "p"), "Authorization", "Basic dTpw"},
		{"api key", APIKeyAuth("k"), "X-API-Key", "k"},
		{"token", TokenAuth("sess"), "X-Auth-Token", "sess"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.cfg.Filter()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out, err := f.Apply(context.Background(), newRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.Headers.Get(tt.header); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}

	if _, err := (&AuthConfig{Type: AuthBearer}).Filter(); err == nil {
		t.Error("expected an error for a bearer config without token")
	}
	if f, err := (&AuthConfig{}).Filter(); err != nil || f != nil {
		t.Errorf("empty config: got %v, %v", f, err)
	}
}

func TestSession_CachesUntilExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var logins atomic.Int32
	s := NewSession(func(context.Context) (string, time.Time, error) {
		n := logins.Add(1)
		return "token-" + string(rune('0'+n)), now.Add(time.Hour), nil
	}, WithClock(func() time.Time { return now }))

	var wg conc.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Go(func() {
			if tok, err := s.Token(context.Background()); err != nil || tok != "token-1" {
				t.Errorf("Token = %q, %v", tok, err)
			}
		})
	}
	wg.Wait()
	if logins.Load() != 1 {
		t.Errorf("logins = %d, want 1", logins.Load())
	}

	now = now.Add(59*time.Minute + 45*time.Second)
	if tok, _ := s.Token(context.Background()); tok != "token-2" {
		t.Errorf("expected renewal inside the skew window, got %q", tok)
	}

	s.Invalidate()
	if tok, _ := s.Token(context.Background()); tok != "token-3" {
		t.Errorf("expected a new login after Invalidate, got %q", tok)
	}
}

func TestAuthTokenHeader_SourceError(t *testing.T) {
	f := AuthTokenHeader(TokenSourceFunc(func(context.Context) (string, error) {
		return "", stderrors.New("keystone down")
	}))
	if _, err := f.Apply(context.Background(), newRequest()); err == nil {
		t.Error("expected an error")
	}
}
