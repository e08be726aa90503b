package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/catalogkit/internal/config"
	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/models"
	"github.com/catalogkit/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Data     json.RawMessage   `json:"data"`
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
}

type apiFixture struct {
	engine   *gin.Engine
	token    string
	category *models.Category
}

func setupAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	category := &models.Category{Name: "Drinks", IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = testSecret
	container := provider.NewContainer(cfg, db)
	t.Cleanup(container.Close)

	return &apiFixture{
		engine:   SetupRouter(cfg, container),
		token:    signAdminToken(t, testSecret, AdminClaims{AdminID: 1, RegisteredClaims: jwt.RegisteredClaims{}}),
		category: category,
	}
}

func (f *apiFixture) do(t *testing.T, method, path string, form url.Values) (int, apiEnvelope) {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Accept-Language", "en-US")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return w.Code, env
}

func productPayload(t *testing.T, categoryID uint, factor string) url.Values {
	t.Helper()
	form := configurator.NewProductForm()
	form.Name = "Mineral water"
	form.CategoryID = categoryID
	form.BaseUnit = "bottle"
	form.BaseStockQuantity = 48
	form.Units.Add()
	_ = form.Units.Update(0, configurator.UnitFieldName, "bottle")
	form.Units.Add()
	_ = form.Units.Update(1, configurator.UnitFieldName, "case")
	_ = form.Units.Update(1, configurator.UnitFieldFactor, factor)
	values, err := form.Payload()
	if err != nil {
		t.Fatalf("build payload failed: %v", err)
	}
	return values
}

func TestAdminRoutesRequireToken(t *testing.T) {
	f := setupAPIFixture(t)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}

func TestProductSubmitAndFetch(t *testing.T) {
	f := setupAPIFixture(t)

	status, env := f.do(t, http.MethodPost, "/api/v1/admin/products", productPayload(t, f.category.ID, "24"))
	if status != http.StatusOK || !env.Success {
		t.Fatalf("create want success got %d %+v", status, env)
	}
	var saved struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &saved); err != nil || saved.ID == 0 {
		t.Fatalf("saved id missing: %s", string(env.Data))
	}

	status, env = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/products/%d", saved.ID), nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("get want success got %d %+v", status, env)
	}
	var snap configurator.ProductSnapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatalf("decode snapshot failed: %v", err)
	}
	if snap.Name != "Mineral water" || len(snap.UnitConversions) != 2 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	status, env = f.do(t, http.MethodGet, "/api/v1/admin/references/products", nil)
	if status != http.StatusOK || !env.Success || !strings.Contains(string(env.Data), "Mineral water") {
		t.Fatalf("reference list should include the product: %d %s", status, string(env.Data))
	}
}

func TestProductSubmitValidationErrors(t *testing.T) {
	f := setupAPIFixture(t)

	status, env := f.do(t, http.MethodPost, "/api/v1/admin/products", productPayload(t, f.category.ID, "0"))
	if status != http.StatusUnprocessableEntity || env.Success {
		t.Fatalf("want 422 failure got %d %+v", status, env)
	}
	if _, ok := env.Errors["unit_conversions[1].conversion_factor"]; !ok {
		t.Fatalf("factor error should be keyed by row path, got %v", env.Errors)
	}
}

func TestProductSubmitMalformedPayload(t *testing.T) {
	f := setupAPIFixture(t)
	values := productPayload(t, f.category.ID, "12")
	values.Set(configurator.CollectionUnits, "{not json")

	status, env := f.do(t, http.MethodPost, "/api/v1/admin/products", values)
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("want 400 failure got %d %+v", status, env)
	}
}

func TestMissingRecordsReturnNotFound(t *testing.T) {
	f := setupAPIFixture(t)
	for _, path := range []string{
		"/api/v1/admin/products/99",
		"/api/v1/admin/combos/99",
		"/api/v1/admin/promotions/99",
	} {
		status, env := f.do(t, http.MethodGet, path, nil)
		if status != http.StatusNotFound || env.Success {
			t.Fatalf("%s want 404 got %d", path, status)
		}
	}
	status, _ := f.do(t, http.MethodGet, "/api/v1/admin/references/vendors", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unknown reference kind want 400 got %d", status)
	}
}

func TestAdminRouteCatalog(t *testing.T) {
	f := setupAPIFixture(t)
	status, env := f.do(t, http.MethodGet, "/api/v1/admin/routes", nil)
	if status != http.StatusOK {
		t.Fatalf("status want 200 got %d", status)
	}
	var items []adminRouteCatalogItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode catalog failed: %v", err)
	}
	modules := map[string]bool{}
	for _, item := range items {
		modules[item.Module] = true
	}
	for _, module := range []string{"products", "combos", "promotions", "references"} {
		if !modules[module] {
			t.Fatalf("module %s missing from catalog %v", module, items)
		}
	}
	if got := deriveAdminRouteModule("/api/v1/admin/combos/:id"); got != "combos" {
		t.Fatalf("module want combos got %s", got)
	}
}
