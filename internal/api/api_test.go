package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"carboncampus/internal/catalog"
	"carboncampus/internal/config"
	"carboncampus/internal/ledger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledgerStore, err := ledger.Open(filepath.Join(t.TempDir(), "carboncampus.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { _ = ledgerStore.Close() })

	h := NewHandler(config.DefaultConfig(), catalog.New(), ledgerStore)
	r := gin.New()
	apiGroup := r.Group("/api")
	h.RegisterRoutes(apiGroup)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(sessionHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"username": "Elvis",
		"password": "0000",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty session token")
	}
	return resp.Token
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"username": "Elvis",
		"password": "9999",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestInventory_RequiresSession(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/inventory/AR6", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/inventory/AR6", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestInventory_UnknownVersion(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/inventory/AR9", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestInventory_GetAndUpdate(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/inventory/AR6", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get inventory: %d body=%s", w.Code, w.Body.String())
	}

	var view inventoryView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Version != "AR6" || len(view.Stationary) == 0 {
		t.Fatalf("unexpected view: version=%s stationary=%d", view.Version, len(view.Stationary))
	}

	w = doJSON(t, r, http.MethodPatch, "/api/inventory/AR6/items", token, map[string]any{
		"category": "stationary",
		"key":      "汽油",
		"value":    200,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update item: %d body=%s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	for _, l := range view.Stationary {
		if l.Key == "汽油" && l.Value != 200 {
			t.Fatalf("update not reflected: %v", l.Value)
		}
	}

	// 負值被拒
	w = doJSON(t, r, http.MethodPatch, "/api/inventory/AR6/items", token, map[string]any{
		"category": "stationary",
		"key":      "汽油",
		"value":    -1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative value: %d body=%s", w.Code, w.Body.String())
	}

	// 未知行項
	w = doJSON(t, r, http.MethodPatch, "/api/inventory/AR6/items", token, map[string]any{
		"category": "stationary",
		"key":      "不存在",
		"value":    1,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown key: %d body=%s", w.Code, w.Body.String())
	}
}

func TestInventory_VersionIsolation(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPatch, "/api/inventory/AR5/items", token, map[string]any{
		"category": "stationary",
		"key":      "汽油",
		"value":    500,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update AR5: %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/inventory/AR6", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get AR6: %d", w.Code)
	}
	var view inventoryView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	for _, l := range view.Stationary {
		if l.Key == "汽油" && l.Value != 100 {
			t.Fatalf("AR6 store affected by AR5 edit: %v", l.Value)
		}
	}
}

func TestCalculate(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/inventory/AR6/calculate", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("calculate: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Totals struct {
			Scope1 float64 `json:"scope1"`
			Scope2 float64 `json:"scope2"`
			Scope3 float64 `json:"scope3"`
			Grand  float64 `json:"grandTotal"`
		} `json:"totals"`
		Offset float64 `json:"offset"`
		Net    float64 `json:"net"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	sum := resp.Totals.Scope1 + resp.Totals.Scope2 + resp.Totals.Scope3
	if diff := sum - resp.Totals.Grand; diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("scopes do not reconcile: %v vs %v", sum, resp.Totals.Grand)
	}
	if diff := (resp.Totals.Grand - resp.Offset) - resp.Net; diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("net mismatch: grand=%v offset=%v net=%v", resp.Totals.Grand, resp.Offset, resp.Net)
	}
}

func TestSettings_UnknownUtilityRejected(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/inventory/AR6/settings", token, map[string]any{
		"waterUtility": "不存在的單位",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/inventory/AR6/settings", token, map[string]any{
		"waterUtility": "臺北自來水營業事業處",
		"septicInUse":  false,
		"year":         2024,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("settings: %d body=%s", w.Code, w.Body.String())
	}
	var view inventoryView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.WaterUtility != "臺北自來水營業事業處" || view.SepticInUse || view.Year != 2024 {
		t.Fatalf("settings not applied: %+v", view)
	}
}

func TestExportImport_Roundtrip(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPatch, "/api/inventory/AR6/items", token, map[string]any{
		"category": "stationary",
		"key":      "汽油",
		"value":    432,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d", w.Code)
	}

	// 導出
	w = doJSON(t, r, http.MethodGet, "/api/inventory/AR6/export", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d body=%s", w.Code, w.Body.String())
	}
	exported := w.Body.Bytes()

	// 重置後導入
	w = doJSON(t, r, http.MethodPatch, "/api/inventory/AR6/items", token, map[string]any{
		"category": "stationary",
		"key":      "汽油",
		"value":    100,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reset: %d", w.Code)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "upload.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(exported); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/AR6/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(sessionHeader, token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: %d body=%s", rec.Code, rec.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/inventory/AR6", token, nil)
	var view inventoryView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	for _, l := range view.Stationary {
		if l.Key == "汽油" && l.Value != 432 {
			t.Fatalf("import did not restore value: %v", l.Value)
		}
	}
}

func TestLedger_CRUD(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/ledger", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d body=%s", w.Code, w.Body.String())
	}
	var listResp struct {
		Rows []struct {
			ID string `json:"id"`
		} `json:"rows"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Rows) != 7 {
		t.Fatalf("expected 7 seeded rows, got %d", len(listResp.Rows))
	}
	if diff := listResp.Total - 2.468; diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("unexpected seeded total: %v", listResp.Total)
	}

	w = doJSON(t, r, http.MethodPost, "/api/ledger", token, map[string]any{
		"kind":     "tree_sink",
		"category": "校門口老樟樹",
		"quantity": 30,
		"unit":     "kgCO2e",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add: %d body=%s", w.Code, w.Body.String())
	}
	var row struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &row); err != nil {
		t.Fatalf("decode row: %v", err)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/ledger/"+row.ID, token, map[string]any{
		"quantity": 45,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/api/ledger/"+row.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d body=%s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodDelete, "/api/ledger/"+row.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("double delete: %d body=%s", w.Code, w.Body.String())
	}
}

func TestLogout_InvalidatesToken(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/inventory/AR6", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token should be invalid after logout: %d", w.Code)
	}
}

func TestVersions_Public(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/versions", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("versions: %d", w.Code)
	}
	var resp struct {
		Versions []string `json:"versions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Versions) != 2 || resp.Versions[0] != "AR5" || resp.Versions[1] != "AR6" {
		t.Fatalf("unexpected versions: %v", resp.Versions)
	}
}
