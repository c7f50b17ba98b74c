package recipes

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
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// carouselUser is the account whose recipes feed the home-page carousel.
const carouselUser = "admin"

// Store is the slice of the recipe_detail collection the handlers need.
type Store interface {
	All(ctx context.Context) ([]models.Recipe, error)
	ByCreator(ctx context.Context, username string) ([]models.Recipe, error)
	ByID(ctx context.Context, id primitive.ObjectID) (models.Recipe, error)
	Insert(ctx context.Context, recipe models.Recipe) (primitive.ObjectID, error)
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

// RefStore reads the category and difficulty reference data for the add form.
type RefStore interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Difficulties(ctx context.Context) ([]models.Difficulty, error)
}

type Handler struct {
	Store    Store
	Refs     RefStore
	Sessions *session.Manager
	Tmpl     *tmpl.Renderer
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, title string) tmpl.Page {
	return tmpl.Page{
		Title: title,
		Flash: flash.Pop(w, r),
		User:  h.Sessions.Username(r),
	}
}

type homePage struct {
	tmpl.Page
	Carousel []models.Recipe
	Recipes  []models.Recipe
}

// Home handles GET /. The carousel is the admin account's recipes in a fresh
// random order on every request.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	carousel, err := h.Store.ByCreator(ctx, carouselUser)
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}
	utils.Shuffle(carousel)

	recipes, err := h.Store.All(ctx)
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	h.Tmpl.Render(w, http.StatusOK, "home.html", homePage{
		Page:     h.page(w, r, "Home"),
		Carousel: carousel,
		Recipes:  recipes,
	})
}

type listPage struct {
	tmpl.Page
	Recipes []models.Recipe
}

// List handles GET /get_recipe.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.Store.All(ctx)
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	h.Tmpl.Render(w, http.StatusOK, "get_recipe.html", listPage{
		Page:    h.page(w, r, "Recipes"),
		Recipes: recipes,
	})
}

type addPage struct {
	tmpl.Page
	Categories   []models.Category
	Difficulties []models.Difficulty
}

// AddRecipe handles GET and POST /add_recipe. Multi-valued fields keep their
// submitted order and may be empty; values are stored as submitted.
func (h *Handler) AddRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if r.Method != http.MethodPost {
		categories, err := h.Refs.Categories(ctx)
		if err != nil {
			h.Tmpl.ServerError(w, err)
			return
		}
		difficulties, err := h.Refs.Difficulties(ctx)
		if err != nil {
			h.Tmpl.ServerError(w, err)
			return
		}
		h.Tmpl.Render(w, http.StatusOK, "add_recipe.html", addPage{
			Page:         h.page(w, r, "Add Recipe"),
			Categories:   categories,
			Difficulties: difficulties,
		})
		return
	}

	username := h.Sessions.Username(r)
	if username == "" {
		flash.Set(w, "Please log in to continue")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	gfFree := "off"
	if r.PostForm.Get("gf_free") != "" {
		gfFree = "on"
	}

	recipe := models.Recipe{
		CategoryName: r.PostForm.Get("category_name"),
		RecipeName:   r.PostForm.Get("recipe_name"),
		Servings:     r.PostForm.Get("servings"),
		PrepTime:     r.PostForm.Get("prep_time"),
		CookTime:     r.PostForm.Get("cook_time"),
		GfFree:       gfFree,
		Ingredients:  r.PostForm["ingredients"],
		RecipeImage:  r.PostForm.Get("recipe_image"),
		RecipeMethod: r.PostForm["recipe_method"],
		CreatedBy:    username,
		Difficulty:   r.PostForm["difficulty"],
		Cuisine:      r.PostForm.Get("cuisine"),
	}

	if _, err := h.Store.Insert(ctx, recipe); err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	flash.Set(w, "Recipe Successfully Added")
	http.Redirect(w, r, "/get_recipe", http.StatusSeeOther)
}

type recipePage struct {
	tmpl.Page
	Recipe models.Recipe
}

// FullRecipe handles GET /full_recipe/:id. Malformed and unknown identifiers
// both get the 404 page.
func (h *Handler) FullRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		h.Tmpl.NotFound(w, h.page(w, r, "Not Found"))
		return
	}

	recipe, err := h.Store.ByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		h.Tmpl.NotFound(w, h.page(w, r, "Not Found"))
		return
	}
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	h.Tmpl.Render(w, http.StatusOK, "full_recipe.html", recipePage{
		Page:   h.page(w, r, recipe.RecipeName),
		Recipe: recipe,
	})
}

// Search handles GET and POST /search, rendering the recipes matched by the
// text query on the list template.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := r.FormValue("query")

	recipes, err := h.Store.Search(ctx, query)
	if err != nil {
		h.Tmpl.ServerError(w, err)
		return
	}

	h.Tmpl.Render(w, http.StatusOK, "get_recipe.html", listPage{
		Page:    h.page(w, r, "Search Results"),
		Recipes: recipes,
	})
}
