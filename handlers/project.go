package handlers

import (
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleProjectList returns all projects with their client names.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("projects", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("project_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			clientName := ""
			if client, err := app.FindRecordById("clients", rec.GetString("client")); err == nil {
				clientName = client.GetString("name")
			}
			items = append(items, map[string]any{
				"id":              rec.Id,
				"name":            rec.GetString("name"),
				"referenceNumber": rec.GetString("reference_number"),
				"client":          clientName,
				"status":          rec.GetString("status"),
				"budget":          rec.GetFloat("budget"),
			})
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

// HandleProjectCreate adds a project under a client.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Printf("project_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return e.String(http.StatusBadRequest, "Project name is required")
		}
		clientID := strings.TrimSpace(e.Request.FormValue("client"))
		if clientID == "" {
			return e.String(http.StatusBadRequest, "Client is required")
		}
		if _, err := app.FindRecordById("clients", clientID); err != nil {
			return e.String(http.StatusBadRequest, "Client not found")
		}

		budget := 0.0
		if v := e.Request.FormValue("budget"); v != "" {
			budget = services.ParseMoney(v)
			if math.IsNaN(budget) || budget < 0 {
				return e.String(http.StatusBadRequest, "Budget must be a non-negative number")
			}
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("name", name)
		rec.Set("client", clientID)
		rec.Set("reference_number", strings.TrimSpace(e.Request.FormValue("reference_number")))
		rec.Set("status", "active")
		rec.Set("budget", budget)

		if err := app.Save(rec); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": rec.Id})
	}
}

// HandleProjectView returns a project with its budget status.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_view: not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":              rec.Id,
			"name":            rec.GetString("name"),
			"referenceNumber": rec.GetString("reference_number"),
			"status":          rec.GetString("status"),
			"budget":          projectBudgetStatus(app, rec),
		})
	}
}

// HandleProjectEdit updates a project's name, status or budget.
func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_edit: not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		if name := strings.TrimSpace(e.Request.FormValue("name")); name != "" {
			rec.Set("name", name)
		}
		if status := e.Request.FormValue("status"); status != "" {
			if status != "active" && status != "on_hold" && status != "complete" {
				return e.String(http.StatusBadRequest, "Unknown project status")
			}
			rec.Set("status", status)
		}
		if v := e.Request.FormValue("budget"); v != "" {
			budget := services.ParseMoney(v)
			if math.IsNaN(budget) || budget < 0 {
				return e.String(http.StatusBadRequest, "Budget must be a non-negative number")
			}
			rec.Set("budget", budget)
		}

		if err := app.Save(rec); err != nil {
			log.Printf("project_edit: could not save %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": rec.Id})
	}
}

// projectBudgetStatus sums the project's expenses against its budget.
func projectBudgetStatus(app *pocketbase.PocketBase, project *core.Record) services.ProjectBudgetStatus {
	records, err := app.FindRecordsByFilter("expenses", "project = {:projectId}", "", 0, 0, map[string]any{"projectId": project.Id})
	if err != nil {
		records = nil
	}

	amounts := make([]float64, 0, len(records))
	for _, rec := range records {
		amounts = append(amounts, rec.GetFloat("amount"))
	}
	return services.CalcProjectBudget(project.GetFloat("budget"), amounts)
}
