package profile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ladle/db"
	"ladle/flash"
	"ladle/models"
	"ladle/session"
	"ladle/tmpl"

	"github.com/julienschmidt/httprouter"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

type RecipeStore interface {
	ByCreator(ctx context.Context, username string) ([]models.Recipe, error)
}

type Handler struct {
	Users    UserStore
	Recipes  RecipeStore
	Sessions *session.Manager
	Tmpl     *tmpl.Renderer
}

type profilePage struct {
	tmpl.Page
	Username string
	Recipes  []models.Recipe
}

// Show handles GET and POST /profile/:username. The session, not the path
// parameter, decides whose recipes are shown; the user record is re-fetched
// so a signed cookie for a since-removed account does not pass.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username := h.Sessions.Username(r)

	user, err := h.Users.FindByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		h.Sessions.Clear(w)
		flash.Set(w, "Please log in to continue")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	recipes, err := h.Recipes.ByCreator(ctx, username)
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	h.Tmpl.Render(w, http.StatusOK, "profile.html", profilePage{
		Page: tmpl.Page{
			Title: user.Username,
			Flash: flash.Pop(w, r),
			User:  username,
		},
		Username: user.Username,
		Recipes:  recipes,
	})
}
