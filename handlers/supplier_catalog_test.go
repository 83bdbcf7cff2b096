package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"brandquote/testhelpers"
)

func TestHandleSupplierList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSupplierItem(t, app, "ACME", "600450", "Corex Board", "125.50")
	testhelpers.CreateTestSupplierItem(t, app, "SignCo", "", "PVC banner 3x6m", "899")

	handler := HandleSupplierList(app)
	req := httptest.NewRequest(http.MethodGet, "/suppliers", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 items, got %d", resp.Count)
	}
}

func TestHandleSupplierListSearch(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSupplierItem(t, app, "ACME", "600450", "Corex Board", "125.50")
	testhelpers.CreateTestSupplierItem(t, app, "SignCo", "", "PVC banner 3x6m", "899")

	handler := HandleSupplierList(app)
	req := httptest.NewRequest(http.MethodGet, "/suppliers?q=banner", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("expected 1 filtered item, got %d", resp.Count)
	}
}

func TestHandleSupplierUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	item := testhelpers.CreateTestSupplierItem(t, app, "ACME", "600450", "Corex Board", "125.50")

	form := url.Values{}
	form.Set("supplier_name", "ACME Trading")
	form.Set("sku", "600450")
	form.Set("product_name", "Corex Board 600x450")
	form.Set("unit", "Each")
	form.Set("price", "R 130.00")

	handler := HandleSupplierUpdate(app)
	req := httptest.NewRequest(http.MethodPost, "/suppliers/"+item.Id, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := app.FindRecordById("supplier_items", item.Id)
	if err != nil {
		t.Fatalf("record vanished: %v", err)
	}
	if updated.GetString("price") != "130" {
		t.Errorf("expected re-parsed price 130, got %q", updated.GetString("price"))
	}
	if updated.GetString("supplier_name") != "ACME Trading" {
		t.Errorf("expected updated supplier name, got %q", updated.GetString("supplier_name"))
	}
}

func TestHandleSupplierUpdateInvalidPrice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	item := testhelpers.CreateTestSupplierItem(t, app, "ACME", "600450", "Corex Board", "125.50")

	form := url.Values{}
	form.Set("supplier_name", "ACME")
	form.Set("sku", "600450")
	form.Set("price", "free")

	handler := HandleSupplierUpdate(app)
	req := httptest.NewRequest(http.MethodPost, "/suppliers/"+item.Id, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for invalid price, got %d", rec.Code)
	}
}

func TestHandleSupplierDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	item := testhelpers.CreateTestSupplierItem(t, app, "ACME", "600450", "Corex Board", "125.50")

	handler := HandleSupplierDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/suppliers/"+item.Id, nil)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("supplier_items", item.Id); err == nil {
		t.Error("expected record to be deleted")
	}
}

func TestHandleCatalogExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSupplierItem(t, app, "ACME", "600450", "Corex Board", "125.50")

	handler := HandleCatalogExport(app)
	req := httptest.NewRequest(http.MethodGet, "/suppliers/export", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheet") {
		t.Errorf("unexpected content type %q", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("exported workbook does not open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Supplier Catalog")
	if err != nil || len(rows) != 2 {
		t.Errorf("expected header plus 1 row, got %d (err %v)", len(rows), err)
	}
}
