package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/repository"
	"github.com/vaultpass/passgen/internal/service"
)

type testAPI struct {
	handler   http.Handler
	clip      *clipboard.Memory
	storePath string
}

func newTestAPI(t *testing.T, passphrase string) *testAPI {
	t.Helper()

	storePath := filepath.Join(t.TempDir(), "passwords.json")
	repo := repository.NewFileRepository(storePath)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}

	var hash string
	if passphrase != "" {
		var err error
		if hash, err = crypto.HashPassphrase(passphrase); err != nil {
			t.Fatalf("HashPassphrase() unexpected error: %v", err)
		}
	}

	clip := &clipboard.Memory{}
	gen := service.NewGeneratorService(crypto.DefaultOptions())
	h := NewRouter(RouterConfig{
		Generator:   gen,
		Entries:     service.NewEntryService(repo, gen, clip),
		Auth:        service.NewAuthService(hash, "test-secret", time.Hour),
		JWTSecret:   "test-secret",
		AuthEnabled: hash != "",
	})

	return &testAPI{handler: h, clip: clip, storePath: storePath}
}

func (a *testAPI) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "127.0.0.1:40000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, "")
	rec := api.do(t, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("GET /health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleGenerate(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/v1/generate", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[model.GenerateResponse](t, rec)
	if len(resp.Password) != 12 {
		t.Errorf("default password length = %d, want 12", len(resp.Password))
	}

	length, yes := 30, true
	rec = api.do(t, http.MethodPost, "/api/v1/generate", model.GenerateRequest{Length: &length, Symbols: &yes}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp = decodeBody[model.GenerateResponse](t, rec)
	if resp.Length != 30 {
		t.Errorf("Length = %d, want 30", resp.Length)
	}
	alphabet := crypto.Alphabet(crypto.GeneratorOptions{Symbols: true})
	for _, c := range resp.Password {
		if !strings.ContainsRune(alphabet, c) {
			t.Errorf("unexpected character %q", c)
		}
	}
}

func TestHandleGenerate_BadRequests(t *testing.T) {
	api := newTestAPI(t, "")
	negative := -1

	tests := []struct {
		name string
		body any
		want int
	}{
		{"negative length", model.GenerateRequest{Length: &negative}, http.StatusBadRequest},
		{"wrong type", map[string]any{"length": "twelve"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/api/v1/generate", tt.body, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandleGenerate_BodyTooLarge(t *testing.T) {
	api := newTestAPI(t, "")

	big := `{"length": 12, "pad": "` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(big))
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestEntryLifecycle(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/v1/entries", model.SaveEntryRequest{Name: "github", Password: "abc"}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/v1/entries/github", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := decodeBody[model.EntryResponse](t, rec); got.Password != "abc" {
		t.Errorf("password = %q, want %q", got.Password, "abc")
	}

	rec = api.do(t, http.MethodPost, "/api/v1/entries/github/copy", nil, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("copy status = %d", rec.Code)
	}
	if api.clip.Text() != "abc" {
		t.Errorf("clipboard = %q, want %q", api.clip.Text(), "abc")
	}

	rec = api.do(t, http.MethodDelete, "/api/v1/entries/github", nil, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/entries/github"},
		{http.MethodDelete, "/api/v1/entries/github"},
		{http.MethodPost, "/api/v1/entries/github/copy"},
	} {
		if rec := api.do(t, tc.method, tc.path, nil, ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tc.method, tc.path, rec.Code)
		}
	}
}

func TestHandleSave_GeneratesWhenPasswordEmpty(t *testing.T) {
	api := newTestAPI(t, "")
	length, yes := 16, true

	rec := api.do(t, http.MethodPost, "/api/v1/entries", model.SaveEntryRequest{
		Name:     "wifi",
		Generate: &model.GenerateRequest{Length: &length, Uppercase: &yes},
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	saved := decodeBody[model.EntryResponse](t, rec)
	if len(saved.Password) != 16 {
		t.Errorf("generated password length = %d, want 16", len(saved.Password))
	}

	rec = api.do(t, http.MethodGet, "/api/v1/entries/wifi", nil, "")
	if got := decodeBody[model.EntryResponse](t, rec); got.Password != saved.Password {
		t.Errorf("stored password = %q, want %q", got.Password, saved.Password)
	}
}

func TestHandleSave_NameRequired(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/v1/entries", model.SaveEntryRequest{Name: " ", Password: "x"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/api/v1/entries", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", rec.Code)
	}

	long := strings.Repeat("n", service.MaxNameLength+1)
	rec = api.do(t, http.MethodPost, "/api/v1/entries", model.SaveEntryRequest{Name: long, Password: "x"}, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("over-long name status = %d, want 400", rec.Code)
	}
}

func TestHandleListNames(t *testing.T) {
	api := newTestAPI(t, "")

	for _, name := range []string{"a", "b", "c"} {
		rec := api.do(t, http.MethodPost, "/api/v1/entries", model.SaveEntryRequest{Name: name, Password: "p"}, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("save %q status = %d", name, rec.Code)
		}
	}

	rec := api.do(t, http.MethodGet, "/api/v1/entries", nil, "")
	names := decodeBody[model.NamesResponse](t, rec).Names
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("names = %v, want [a b c]", names)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/entries?selection=1", nil, "")
	names = decodeBody[model.NamesResponse](t, rec).Names
	if len(names) != 4 || names[0] != model.NoSelection {
		t.Errorf("selection names = %q, want sentinel then [a b c]", names)
	}
}

func TestEntryNamesNeedingEscapes(t *testing.T) {
	api := newTestAPI(t, "")

	for _, tc := range []struct{ name, path string }{
		{"my site", "/api/v1/entries/my%20site"},
		{"a/b", "/api/v1/entries/a%2Fb"},
		{"100%", "/api/v1/entries/100%25"},
	} {
		rec := api.do(t, http.MethodPost, "/api/v1/entries", model.SaveEntryRequest{Name: tc.name, Password: "p"}, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("save %q status = %d", tc.name, rec.Code)
		}

		rec = api.do(t, http.MethodGet, tc.path, nil, "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", tc.path, rec.Code)
			continue
		}
		if got := decodeBody[model.EntryResponse](t, rec); got.Name != tc.name {
			t.Errorf("GET %s name = %q, want %q", tc.path, got.Name, tc.name)
		}
	}
}

func TestStoreErrorsMapToStatus(t *testing.T) {
	api := newTestAPI(t, "")

	if err := os.WriteFile(api.storePath, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	rec := api.do(t, http.MethodGet, "/api/v1/entries", nil, "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("corrupt store status = %d, want 500", rec.Code)
	}
	if got := decodeBody[map[string]string](t, rec)["error"]; got != repository.ErrCorruptData.Error() {
		t.Errorf("error = %q, want %q", got, repository.ErrCorruptData.Error())
	}

	if err := os.Remove(api.storePath); err != nil {
		t.Fatal(err)
	}
	rec = api.do(t, http.MethodGet, "/api/v1/entries", nil, "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("missing store status = %d, want 503", rec.Code)
	}
}

func TestAuthProtectsEntries(t *testing.T) {
	api := newTestAPI(t, "correct horse")

	if rec := api.do(t, http.MethodGet, "/api/v1/entries", nil, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rec.Code)
	}
	if rec := api.do(t, http.MethodPost, "/api/v1/generate", nil, ""); rec.Code != http.StatusOK {
		t.Errorf("generate without token status = %d, want 200", rec.Code)
	}

	rec := api.do(t, http.MethodPost, "/api/v1/auth/token", model.TokenRequest{Passphrase: "wrong"}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong passphrase status = %d, want 401", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/api/v1/auth/token", model.TokenRequest{Passphrase: "correct horse"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("token status = %d, body %s", rec.Code, rec.Body.String())
	}
	token := decodeBody[model.TokenResponse](t, rec).Token

	if rec := api.do(t, http.MethodGet, "/api/v1/entries", nil, token); rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rec.Code)
	}
}

func TestTokenWithoutPassphraseConfigured(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/v1/auth/token", model.TokenRequest{Passphrase: "x"}, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
