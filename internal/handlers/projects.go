package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/contextutil"
	"portfolio/internal/portfolio"
)

// ProjectHandler serves the data science project summaries.
type ProjectHandler struct {
	renderer *portfolio.Renderer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(renderer *portfolio.Renderer) *ProjectHandler {
	return &ProjectHandler{renderer: renderer}
}

// List handles GET /api/projects.
//
// swagger:route GET /api/projects listProjects
//
// # List projects
//
// Returns the data science projects with rendered HTML overviews.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Projects
//	  schema:
//	    type: array
//	    items:
//	      "$ref": "#/definitions/Project"
//	'500':
//	  description: Render error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	projects := portfolio.Projects()
	for i, p := range projects {
		rendered, err := h.renderer.WithHTML(p)
		if err != nil {
			contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render project", "slug", p.Slug, "error", err)
			writeError(ctx, w, http.StatusInternalServerError, codeInternal, "Failed to render projects")
			return
		}
		projects[i] = rendered
	}
	writeJSON(ctx, w, http.StatusOK, projects)
}

// Get handles GET /api/projects/{slug}.
//
// swagger:route GET /api/projects/{slug} getProject
//
// # Get a project
//
// Returns one project with its rendered overview.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: path
//     name: slug
//     type: string
//     required: true
// responses:
//
//	'200':
//	  description: Project
//	  schema:
//	    "$ref": "#/definitions/Project"
//	'404':
//	  description: Project not found
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := portfolio.BySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, portfolio.ErrProjectNotFound) {
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "Project not found")
		return
	}

	rendered, err := h.renderer.WithHTML(p)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render project", "slug", p.Slug, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, codeInternal, "Failed to render project")
		return
	}
	writeJSON(ctx, w, http.StatusOK, rendered)
}
