package handlers

import (
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"brandquote/services"
)

// HandleExpenseList returns a project's expenses together with the
// running budget status.
func HandleExpenseList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("expense_list: project not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter("expenses", "project = {:projectId}", "-date", 0, 0, map[string]any{"projectId": projectID})
		if err != nil {
			records = nil
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"id":          rec.Id,
				"description": rec.GetString("description"),
				"category":    rec.GetString("category"),
				"amount":      rec.GetFloat("amount"),
				"date":        rec.GetString("date"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":  items,
			"budget": projectBudgetStatus(app, project),
		})
	}
}

// HandleExpenseCreate records an expense against a project.
func HandleExpenseCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("expense_create: project not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("expense_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		description := strings.TrimSpace(e.Request.FormValue("description"))
		if description == "" {
			return e.String(http.StatusBadRequest, "Description is required")
		}

		amount := services.ParseMoney(e.Request.FormValue("amount"))
		if math.IsNaN(amount) || amount <= 0 {
			return e.String(http.StatusBadRequest, "Amount must be a positive number")
		}

		category := e.Request.FormValue("category")
		if category != "" && !validExpenseCategory(category) {
			return e.String(http.StatusBadRequest, "Unknown expense category")
		}

		date := strings.TrimSpace(e.Request.FormValue("date"))
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		col, err := app.FindCollectionByNameOrId("expenses")
		if err != nil {
			log.Printf("expense_create: could not find expenses collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		rec := core.NewRecord(col)
		rec.Set("project", projectID)
		rec.Set("description", description)
		rec.Set("category", category)
		rec.Set("amount", amount)
		rec.Set("date", date)

		if err := app.Save(rec); err != nil {
			log.Printf("expense_create: could not save expense: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":     rec.Id,
			"budget": projectBudgetStatus(app, project),
		})
	}
}

// HandleExpenseDelete removes one expense.
func HandleExpenseDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		expenseID := e.Request.PathValue("id")
		rec, err := app.FindRecordById("expenses", expenseID)
		if err != nil {
			log.Printf("expense_delete: not found %s: %v", expenseID, err)
			return e.String(http.StatusNotFound, "Expense not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("expense_delete: could not delete %s: %v", expenseID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.NoContent(http.StatusNoContent)
	}
}

func validExpenseCategory(category string) bool {
	for _, c := range services.ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
