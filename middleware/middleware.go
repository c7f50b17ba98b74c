package middleware

import (
	"net/http"

	"ladle/flash"
	"ladle/session"

	"github.com/julienschmidt/httprouter"
)

// RequireSession sends anonymous requests to the login page before the
// wrapped handler (and any data access) runs.
func RequireSession(sessions *session.Manager, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if sessions.Username(r) == "" {
			flash.Set(w, "Please log in to continue")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, ps)
	}
}
