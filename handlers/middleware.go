package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActiveProjectKey contextKey = "activeProject"

// ActiveProject is the project the session is currently working in.
type ActiveProject struct {
	ID   string
	Name string
}

// GetActiveProject extracts the active project from the request context.
func GetActiveProject(r *http.Request) *ActiveProject {
	if val, ok := r.Context().Value(ActiveProjectKey).(*ActiveProject); ok {
		return val
	}
	return nil
}

// ActiveProjectMiddleware reads the "active_project" cookie, loads the
// project record and stores it in the request context. A stale cookie
// pointing at a deleted project is cleared.
func ActiveProjectMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cookie, err := e.Request.Cookie("active_project")
		if err != nil || cookie.Value == "" {
			return e.Next()
		}

		rec, err := app.FindRecordById("projects", cookie.Value)
		if err != nil {
			log.Printf("middleware: active project %s not found, clearing cookie", cookie.Value)
			http.SetCookie(e.Response, &http.Cookie{
				Name:   "active_project",
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
			return e.Next()
		}

		active := &ActiveProject{
			ID:   rec.Id,
			Name: rec.GetString("name"),
		}
		ctx := context.WithValue(e.Request.Context(), ActiveProjectKey, active)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// HandleProjectSwitch sets the active project cookie.
func HandleProjectSwitch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			log.Printf("project_switch: not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_project",
			Value:    projectID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
		})
		return e.JSON(http.StatusOK, map[string]any{"active": projectID})
	}
}
