package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/catalog"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/config"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/loaner"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/store"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/uex"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiCatalogBody = `{"data":[
	{"name":"Aurora MR","manufacturer":{"name":"RSI","code":"RSI"},"type":"multi_role","production_status":"flight-ready","focus":"Starter"},
	{"name":"Carrack","manufacturer":{"name":"Anvil","code":"ANVL"},"type":"exploration","production_status":"flight-ready","focus":"Expedition"},
	{"name":"Cutlass Black","manufacturer":{"name":"Drake","code":"DRAK"},"type":"multi_role","production_status":"flight-ready","focus":"Medium Fighter"}
]}`

const apiFiatBody = `{"status":"ok","data":[
	{"vehicle_name":"Aurora MR","currency":"USD","price":25,"price_warbond":20},
	{"vehicle_name":"Carrack","currency":"USD","price":600,"price_warbond":500},
	{"vehicle_name":"Cutlass Black","currency":"USD","price":110,"price_warbond":100}
]}`

const apiAuecBody = `{"status":"ok","data":[
	{"vehicle_name":"Carrack","terminal_name":"New Deal","price_buy":25000000},
	{"vehicle_name":"Cutlass Black","terminal_name":"New Deal","price_buy":1500000}
]}`

type staticFetcher string

func (f staticFetcher) FetchHTML(ctx context.Context) (string, error) {
	return string(f), nil
}

const apiLoanerBody = `<table>
<tr><th>Your Ship</th><th>Our Loaner(s)</th></tr>
<tr><td>Carrack</td><td>Freelancer MAX</td></tr>
</table>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog":
			w.Write([]byte(apiCatalogBody))
		case "/vehicles_prices":
			w.Write([]byte(apiFiatBody))
		case "/vehicles_purchases_prices_all":
			w.Write([]byte(apiAuecBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	st, err := store.Open(&config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "api.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalogClient := catalog.NewClient(upstream.URL+"/catalog", 100,
		store.NewCache[[]catalog.VehicleRecord](st, store.KeyCatalog, 24*time.Hour))
	uexClient := uex.NewClient(upstream.URL, 100,
		store.NewCache[[]uex.PriceRow](st, store.KeyFiatPrices, 2*time.Minute),
		store.NewCache[[]uex.AuecRow](st, store.KeyAUECPrices, 24*time.Hour))
	loanerClient := loaner.NewClient(staticFetcher(apiLoanerBody), time.Second,
		store.NewCache[map[string][]string](st, store.KeyLoanerMatrix, 24*time.Hour))

	svc := viewer.NewService(catalogClient, uexClient, loanerClient, st)
	server := NewServer(svc, &config.Config{BaseURL: "http://localhost:3000"})

	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func post(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	return resp
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestShipsRequireOpenSession(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/ships")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "session")
}

func TestSessionOpenAndListShips(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/api/session/open")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", decodeBody(t, resp)["state"])

	resp = get(t, srv.URL+"/api/ships?sort=name")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 3, body["count"])

	ships := body["ships"].([]any)
	first := ships[0].(map[string]any)
	assert.Equal(t, "Aurora MR", first["name"])

	display := first["display"].(map[string]any)
	assert.Equal(t, "$25.00 USD", display["msrp"])
	assert.Equal(t, "$20.00 USD", display["warbond"])
}

func TestListShipsFilterAndSort(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/api/session/open").Body.Close()

	resp := get(t, srv.URL+"/api/ships?type=multi_role&sort=msrp&dir=desc")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.EqualValues(t, 2, body["count"])

	ships := body["ships"].([]any)
	assert.Equal(t, "Cutlass Black", ships[0].(map[string]any)["name"])
	assert.Equal(t, "Aurora MR", ships[1].(map[string]any)["name"])
}

func TestListShipsRejectsUnknownSortColumn(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/api/session/open").Body.Close()

	resp := get(t, srv.URL+"/api/ships?sort=firepower")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetShipResolvesFuzzyName(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/api/session/open").Body.Close()

	resp := get(t, srv.URL+"/api/ships/cutlass")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Cutlass Black", body["name"])

	resp = get(t, srv.URL+"/api/ships/Banu%20Merchantman")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFilterOptions(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/api/session/open").Body.Close()

	resp := get(t, srv.URL+"/api/filters")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)

	manufacturers := body["manufacturers"].([]any)
	assert.Equal(t, []any{"Anvil", "Drake", "RSI"}, manufacturers)
}

func TestToggleFavorite(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/api/session/open").Body.Close()

	resp := post(t, srv.URL+"/api/favorites/Carrack")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["favorite"])

	resp = get(t, srv.URL+"/api/ships?favorites=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])

	resp = post(t, srv.URL+"/api/favorites/Carrack")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeBody(t, resp)["favorite"])
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/settings")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defaults := decodeBody(t, resp)
	assert.Equal(t, "USD", defaults["currency"])
	assert.Equal(t, "name", defaults["sort_column"])

	payload := `{"search_text":"carrack","currency":"EUR","sort_column":"savings","sort_ascending":false}`
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/settings", strings.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = get(t, srv.URL+"/api/settings")
	saved := decodeBody(t, resp)
	assert.Equal(t, "carrack", saved["search_text"])
	assert.Equal(t, "EUR", saved["currency"])
	assert.Equal(t, "savings", saved["sort_column"])
	assert.Equal(t, false, saved["sort_ascending"])
}

func TestPutSettingsRejectsBadSortColumn(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/settings", strings.NewReader(`{"sort_column":"firepower"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSessionToggleAndStatus(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/status")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "closed", decodeBody(t, resp)["state"])

	resp = post(t, srv.URL+"/api/session/toggle")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", decodeBody(t, resp)["state"])

	resp = post(t, srv.URL+"/api/session/toggle")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "closed", decodeBody(t, resp)["state"])
}
