package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleClientList returns all clients ordered by name.
func HandleClientList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("clients", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("client_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"id":            rec.Id,
				"name":          rec.GetString("name"),
				"contactPerson": rec.GetString("contact_person"),
				"email":         rec.GetString("email"),
				"phone":         rec.GetString("phone"),
				"vatNumber":     rec.GetString("vat_number"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

// HandleClientCreate adds a client.
func HandleClientCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("client_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return e.String(http.StatusBadRequest, "Client name is required")
		}

		col, err := app.FindCollectionByNameOrId("clients")
		if err != nil {
			log.Printf("client_create: could not find clients collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("name", name)
		rec.Set("contact_person", strings.TrimSpace(e.Request.FormValue("contact_person")))
		rec.Set("email", strings.TrimSpace(e.Request.FormValue("email")))
		rec.Set("phone", strings.TrimSpace(e.Request.FormValue("phone")))
		rec.Set("address", strings.TrimSpace(e.Request.FormValue("address")))
		rec.Set("vat_number", strings.TrimSpace(e.Request.FormValue("vat_number")))

		if err := app.Save(rec); err != nil {
			log.Printf("client_create: could not save client: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": rec.Id})
	}
}

// HandleClientUpdate edits an existing client. Only submitted fields
// are changed.
func HandleClientUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("clients", clientID)
		if err != nil {
			log.Printf("client_update: not found %s: %v", clientID, err)
			return e.String(http.StatusNotFound, "Client not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		for form, field := range map[string]string{
			"name":           "name",
			"contact_person": "contact_person",
			"email":          "email",
			"phone":          "phone",
			"address":        "address",
			"vat_number":     "vat_number",
		} {
			if _, ok := e.Request.Form[form]; ok {
				rec.Set(field, strings.TrimSpace(e.Request.FormValue(form)))
			}
		}
		if rec.GetString("name") == "" {
			return e.String(http.StatusBadRequest, "Client name is required")
		}

		if err := app.Save(rec); err != nil {
			log.Printf("client_update: could not save %s: %v", clientID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": rec.Id})
	}
}
