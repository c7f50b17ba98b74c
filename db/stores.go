package db

import (
	"context"
	"errors"

	"ladle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore reads and writes the users collection.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(d *DB) *UserStore {
	return &UserStore{coll: d.Users}
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) Insert(ctx context.Context, user models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// RecipeStore reads and writes the recipe_detail collection.
type RecipeStore struct {
	coll *mongo.Collection
}

func NewRecipeStore(d *DB) *RecipeStore {
	return &RecipeStore{coll: d.Recipes}
}

func (s *RecipeStore) All(ctx context.Context) ([]models.Recipe, error) {
	return s.find(ctx, bson.M{})
}

func (s *RecipeStore) ByCreator(ctx context.Context, username string) ([]models.Recipe, error) {
	return s.find(ctx, bson.M{"created_by": username})
}

func (s *RecipeStore) ByID(ctx context.Context, id primitive.ObjectID) (models.Recipe, error) {
	var recipe models.Recipe
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Recipe{}, ErrNotFound
	}
	if err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (s *RecipeStore) Insert(ctx context.Context, recipe models.Recipe) (primitive.ObjectID, error) {
	recipe.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, recipe); err != nil {
		return primitive.NilObjectID, err
	}
	return recipe.ID, nil
}

func (s *RecipeStore) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	return s.find(ctx, bson.M{"$text": bson.M{"$search": query}})
}

func (s *RecipeStore) find(ctx context.Context, filter bson.M) ([]models.Recipe, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// RefStore reads the categories and difficulty reference collections.
type RefStore struct {
	categories *mongo.Collection
	difficulty *mongo.Collection
}

func NewRefStore(d *DB) *RefStore {
	return &RefStore{categories: d.Categories, difficulty: d.Difficulty}
}

func (s *RefStore) Categories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category_name", Value: 1}})
	cursor, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *RefStore) Difficulties(ctx context.Context) ([]models.Difficulty, error) {
	opts := options.Find().SetSort(bson.D{{Key: "difficulty", Value: 1}})
	cursor, err := s.difficulty.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var difficulties []models.Difficulty
	if err := cursor.All(ctx, &difficulties); err != nil {
		return nil, err
	}
	return difficulties, nil
}
