package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"brandquote/testhelpers"
)

func multipartUpload(t *testing.T, field string, files map[string]string, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(part, content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range extra {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestHandleSupplierImport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleSupplierImport(app)

	body, contentType := multipartUpload(t, "files", map[string]string{
		"acme.csv": "Product Name,SKU,Price\nCorex Board,600450,125.50\nSubtotal,,\n",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/suppliers/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindRecordsByFilter("supplier_items", "sku = '600450'", "", 0, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 saved supplier item, got %d (err %v)", len(records), err)
	}
	if records[0].GetString("price") != "125.5" {
		t.Errorf("expected price stored as numeric string, got %q", records[0].GetString("price"))
	}
	if records[0].GetString("import_batch") == "" {
		t.Error("expected an import batch id")
	}
}

func TestHandleSupplierImportCheapestMode(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleSupplierImport(app)

	body, contentType := multipartUpload(t, "files", map[string]string{
		"acme.csv": "Product Name,SKU,Price\nCorex Board,600450,125.50\nCorex Board,600450,99.00\n",
	}, map[string]string{"mode": "cheapest"})

	req := httptest.NewRequest(http.MethodPost, "/suppliers/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, err := app.FindRecordsByFilter("supplier_items", "sku = '600450'", "", 0, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 collapsed item, got %d (err %v)", len(records), err)
	}
	if records[0].GetString("price") != "99" {
		t.Errorf("expected cheapest price kept, got %q", records[0].GetString("price"))
	}
}

func TestHandleSupplierImportNoUsableRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleSupplierImport(app)

	body, contentType := multipartUpload(t, "files", map[string]string{
		"junk.csv": "Notes\nnothing useful here\n",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/suppliers/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unusable upload, got %d", rec.Code)
	}
}

func TestHandleSupplierImportNoFiles(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleSupplierImport(app)

	body, contentType := multipartUpload(t, "files", nil, map[string]string{"mode": "all"})

	req := httptest.NewRequest(http.MethodPost, "/suppliers/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for missing files, got %d", rec.Code)
	}
}
