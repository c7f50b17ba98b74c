package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Recipe struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CategoryName string             `json:"category_name" bson:"category_name"`
	RecipeName   string             `json:"recipe_name" bson:"recipe_name"`
	Servings     string             `json:"servings" bson:"servings"`
	PrepTime     string             `json:"prep_time" bson:"prep_time"`
	CookTime     string             `json:"cook_time" bson:"cook_time"`
	GfFree       string             `json:"gf_free" bson:"gf_free"` // "on" or "off"
	Ingredients  []string           `json:"ingredients" bson:"ingredients"`
	RecipeImage  string             `json:"recipe_image" bson:"recipe_image"`
	RecipeMethod []string           `json:"recipe_method" bson:"recipe_method"`
	CreatedBy    string             `json:"created_by" bson:"created_by"`
	Difficulty   []string           `json:"difficulty" bson:"difficulty"`
	Cuisine      string             `json:"cuisine" bson:"cuisine"`
}

type Category struct {
	CategoryName string `json:"category_name" bson:"category_name"`
}

type Difficulty struct {
	Difficulty string `json:"difficulty" bson:"difficulty"`
}
