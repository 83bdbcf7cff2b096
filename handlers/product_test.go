package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"brandquote/testhelpers"
)

func TestHandleProductCreateCostPlus(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("name", "Corex board 600x450")
	form.Set("pricing_method", "cost_plus")
	form.Set("unit_cost", "100")
	form.Set("markup_pct", "20")

	handler := HandleProductCreate(app)
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SellingPrice float64 `json:"sellingPrice"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.SellingPrice != 120 {
		t.Errorf("expected selling price 120, got %v", resp.SellingPrice)
	}
}

func TestHandleProductCreateRevenueShareValidation(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("name", "Branded gazebo")
	form.Set("pricing_method", "revenue_share")
	form.Set("unit_cost", "100")
	form.Set("revenue_share_pct", "100")

	handler := HandleProductCreate(app)
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for 100%% revenue share, got %d", rec.Code)
	}
}

func TestHandlePricePreview(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("pricing_method", "revenue_share")
	form.Set("unit_cost", "60")
	form.Set("pct", "40")

	handler := HandlePricePreview(app)
	req := httptest.NewRequest(http.MethodPost, "/products/preview", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		SellingPrice float64 `json:"sellingPrice"`
		Formatted    string  `json:"formatted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.SellingPrice != 100 {
		t.Errorf("expected price 100, got %v", resp.SellingPrice)
	}
	if resp.Formatted != "R 100.00" {
		t.Errorf("expected formatted R 100.00, got %q", resp.Formatted)
	}
}

func TestHandleProductList(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("name", "Corex board 600x450")
	form.Set("pricing_method", "cost_plus")
	form.Set("unit_cost", "100")
	form.Set("markup_pct", "20")

	createReq := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
	createReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	createRec := httptest.NewRecorder()
	if err := HandleProductCreate(app)(newTestRequestEvent(app, createReq, createRec)); err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	handler := HandleProductList(app)
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		Items []struct {
			Name         string  `json:"name"`
			SellingPrice float64 `json:"sellingPrice"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 product, got %d", len(resp.Items))
	}
	if resp.Items[0].SellingPrice != 120 {
		t.Errorf("expected selling price 120, got %v", resp.Items[0].SellingPrice)
	}
}
