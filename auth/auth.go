package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"ladle/db"
	"ladle/flash"
	"ladle/models"
	"ladle/session"
	"ladle/tmpl"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the users collection the auth handlers need.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
}

type Handler struct {
	Users    UserStore
	Sessions *session.Manager
	Tmpl     *tmpl.Renderer
}

type formPage struct {
	tmpl.Page
}

// Register handles GET and POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if r.Method != http.MethodPost {
		h.Tmpl.Render(w, http.StatusOK, "register.html", formPage{tmpl.Page{
			Title: "Register",
			Flash: flash.Pop(w, r),
			User:  h.Sessions.Username(r),
		}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username := strings.ToLower(r.FormValue("username"))

	hashed, err := bcrypt.GenerateFromPassword([]byte(r.FormValue("password")), bcrypt.DefaultCost)
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	user := models.User{
		Username:  username,
		Firstname: strings.ToLower(r.FormValue("firstname")),
		Password:  string(hashed),
	}

	// The unique index on username makes this atomic; no pre-check needed.
	err = h.Users.Insert(ctx, user)
	if errors.Is(err, db.ErrDuplicate) {
		flash.Set(w, "Username already exists")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	if err := h.Sessions.Set(w, username); err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}
	flash.Set(w, "Registration Successful")
	http.Redirect(w, r, "/profile/"+username, http.StatusSeeOther)
}

// Login handles GET and POST /login. Unknown usernames and wrong passwords
// get the same message so the form does not leak which usernames exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if r.Method != http.MethodPost {
		h.Tmpl.Render(w, http.StatusOK, "login.html", formPage{tmpl.Page{
			Title: "Log In",
			Flash: flash.Pop(w, r),
			User:  h.Sessions.Username(r),
		}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username := strings.ToLower(r.FormValue("username"))

	user, err := h.Users.FindByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		flash.Set(w, "Incorrect Username and/or Password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		log.Printf("login lookup failed for %q: %v", username, err)
		h.Tmpl.ServerError(w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(r.FormValue("password"))) != nil {
		flash.Set(w, "Incorrect Username and/or Password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.Set(w, username); err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}
	flash.Set(w, fmt.Sprintf("Welcome, %s", r.FormValue("username")))
	http.Redirect(w, r, "/profile/"+username, http.StatusSeeOther)
}

// Logout handles GET /logout. Clearing an absent session is a no-op, so an
// anonymous request still lands on the login page cleanly.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.Sessions.Clear(w)
	flash.Set(w, "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
