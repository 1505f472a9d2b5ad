package services

import (
	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/storage"
	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings. Favorited/InCart only apply to
// authenticated viewers; for anonymous viewers they are no-ops.
type RecipeFilter struct {
	TagSlugs  []string
	AuthorID  uint
	Favorited bool
	InCart    bool
}

// RecipeService provides methods to manage the recipe aggregate
type RecipeService interface {
	// ListRecipes returns one page of recipes, newest first, with
	// per-viewer flags resolved. viewerID 0 means anonymous.
	ListRecipes(filter RecipeFilter, viewerID uint, page, limit int) ([]models.RecipeResponse, int64, error)
	// GetRecipe retrieves the full representation of a single recipe
	GetRecipe(id, viewerID uint) (*models.RecipeResponse, error)
	// GetRecipeModel retrieves the bare recipe row (ownership checks)
	GetRecipeModel(id uint) (*models.Recipe, error)
	// CreateRecipe stores a new recipe with its ingredient amounts and tags
	CreateRecipe(authorID uint, input models.RecipeInput) (*models.RecipeResponse, error)
	// UpdateRecipe replaces the recipe fields and its whole ingredient/tag set
	UpdateRecipe(id, viewerID uint, input models.RecipeInput) (*models.RecipeResponse, error)
	// DeleteRecipe removes the recipe and everything it owns
	DeleteRecipe(id uint) error
}

// recipeService is the implementation of the RecipeService interface
type recipeService struct {
	db     *gorm.DB
	images storage.ImageStore
}

// NewRecipeService creates a new instance of RecipeService
func NewRecipeService(db *gorm.DB, images storage.ImageStore) RecipeService {
	return &recipeService{db: db, images: images}
}

func (s *recipeService) ListRecipes(filter RecipeFilter, viewerID uint, page, limit int) ([]models.RecipeResponse, int64, error) {
	query := s.db.Model(&models.Recipe{})

	if len(filter.TagSlugs) > 0 {
		// OR semantics: any of the requested tags matches.
		tagged := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}

	if viewerID != 0 {
		if filter.Favorited {
			favorited := s.db.Model(&models.Favorite{}).
				Select("recipe_id").
				Where("user_id = ?", viewerID)
			query = query.Where("recipes.id IN (?)", favorited)
		}
		if filter.InCart {
			inCart := s.db.Model(&models.CartItem{}).
				Select("recipe_id").
				Where("user_id = ?", viewerID)
			query = query.Where("recipes.id IN (?)", inCart)
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	offset := (page - 1) * limit
	if err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("pub_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	responses, err := s.buildResponses(recipes, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return responses, count, nil
}

func (s *recipeService) GetRecipe(id, viewerID uint) (*models.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error; err != nil {
		return nil, err
	}

	responses, err := s.buildResponses([]models.Recipe{recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *recipeService) GetRecipeModel(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *recipeService) CreateRecipe(authorID uint, input models.RecipeInput) (*models.RecipeResponse, error) {
	tags, rows, err := s.resolveInput(input)
	if err != nil {
		return nil, err
	}

	if input.Image == "" {
		return nil, validationErr("image", "this field is required")
	}
	imageURL, err := s.storeImage(input.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:        input.Name,
		AuthorID:    authorID,
		Text:        input.Text,
		Image:       imageURL,
		CookingTime: input.CookingTime,
		Tags:        tags,
		Ingredients: rows,
	}

	// Recipe row, ingredient amounts and tag links land together or not
	// at all.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&recipe).Error
	}); err != nil {
		return nil, err
	}

	return s.GetRecipe(recipe.ID, authorID)
}

func (s *recipeService) UpdateRecipe(id, viewerID uint, input models.RecipeInput) (*models.RecipeResponse, error) {
	recipe, err := s.GetRecipeModel(id)
	if err != nil {
		return nil, err
	}

	tags, rows, err := s.resolveInput(input)
	if err != nil {
		return nil, err
	}

	imageURL := recipe.Image
	if input.Image != "" {
		imageURL, err = s.storeImage(input.Image)
		if err != nil {
			return nil, err
		}
	}

	// Prior tag and ingredient associations are cleared and replaced,
	// never merged; pub_date is immutable.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Updates(map[string]interface{}{
			"name":         input.Name,
			"text":         input.Text,
			"image":        imageURL,
			"cooking_time": input.CookingTime,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	}); err != nil {
		return nil, err
	}

	return s.GetRecipe(recipe.ID, viewerID)
}

func (s *recipeService) DeleteRecipe(id uint) error {
	recipe, err := s.GetRecipeModel(id)
	if err != nil {
		return err
	}

	// Owned and referencing rows are removed explicitly rather than
	// relying on driver-dependent cascade enforcement.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// resolveInput validates the write payload and resolves tag and
// ingredient ids into rows ready to attach to a recipe.
func (s *recipeService) resolveInput(input models.RecipeInput) ([]models.Tag, []models.RecipeIngredient, error) {
	if input.CookingTime < 1 {
		return nil, nil, validationErr("cooking_time", "must be greater than or equal to 1")
	}
	if len(input.Tags) == 0 {
		return nil, nil, validationErr("tags", "at least one tag is required")
	}
	if len(input.Ingredients) == 0 {
		return nil, nil, validationErr("ingredients", "at least one ingredient is required")
	}

	seen := make(map[uint]bool, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if item.Amount < 1 {
			return nil, nil, validationErr("amount", "must be greater than or equal to 1")
		}
		if seen[item.ID] {
			return nil, nil, validationErr("ingredients", "duplicate ingredient in payload")
		}
		seen[item.ID] = true
	}

	var tags []models.Tag
	if err := s.db.Where("id IN ?", uniqueIDs(input.Tags)).Find(&tags).Error; err != nil {
		return nil, nil, err
	}
	if len(tags) != len(uniqueIDs(input.Tags)) {
		return nil, nil, validationErr("tags", "unknown tag id")
	}

	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}
	var n int64
	if err := s.db.Model(&models.Ingredient{}).Where("id IN ?", ingredientIDs).Count(&n).Error; err != nil {
		return nil, nil, err
	}
	if n != int64(len(ingredientIDs)) {
		return nil, nil, validationErr("ingredients", "unknown ingredient id")
	}

	rows := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		rows = append(rows, models.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}

	return tags, rows, nil
}

func (s *recipeService) storeImage(dataURI string) (string, error) {
	data, ext, err := storage.DecodeDataURI(dataURI)
	if err != nil {
		return "", validationErr("image", err.Error())
	}
	return s.images.Save("recipes/images", data, ext)
}

// buildResponses assembles API representations, resolving the
// per-viewer flags with one query per relation for the whole page.
// Anonymous viewers get all-false flags without any lookup.
func (s *recipeService) buildResponses(recipes []models.Recipe, viewerID uint) ([]models.RecipeResponse, error) {
	responses := make([]models.RecipeResponse, 0, len(recipes))
	if len(recipes) == 0 {
		return responses, nil
	}

	favorited := map[uint]bool{}
	inCart := map[uint]bool{}
	subscribed := map[uint]bool{}

	if viewerID != 0 {
		recipeIDs := make([]uint, 0, len(recipes))
		authorIDs := make([]uint, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID)
			authorIDs = append(authorIDs, r.AuthorID)
		}

		var favorites []models.Favorite
		if err := s.db.Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).Find(&favorites).Error; err != nil {
			return nil, err
		}
		for _, f := range favorites {
			favorited[f.RecipeID] = true
		}

		var cartItems []models.CartItem
		if err := s.db.Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).Find(&cartItems).Error; err != nil {
			return nil, err
		}
		for _, item := range cartItems {
			inCart[item.RecipeID] = true
		}

		var subscriptions []models.Subscription
		if err := s.db.Where("subscriber_id = ? AND author_id IN ?", viewerID, authorIDs).Find(&subscriptions).Error; err != nil {
			return nil, err
		}
		for _, sub := range subscriptions {
			subscribed[sub.AuthorID] = true
		}
	}

	for _, recipe := range recipes {
		ingredients := make([]models.IngredientAmount, 0, len(recipe.Ingredients))
		for _, row := range recipe.Ingredients {
			item := models.IngredientAmount{
				ID:     row.IngredientID,
				Amount: row.Amount,
			}
			if row.Ingredient != nil {
				item.Name = row.Ingredient.Name
				item.MeasurementUnit = row.Ingredient.MeasurementUnit
			}
			ingredients = append(ingredients, item)
		}

		author := models.UserProfile{}
		if recipe.Author != nil {
			author = models.UserProfile{
				ID:           recipe.Author.ID,
				Email:        recipe.Author.Email,
				Username:     recipe.Author.Username,
				FirstName:    recipe.Author.FirstName,
				LastName:     recipe.Author.LastName,
				IsSubscribed: subscribed[recipe.AuthorID],
			}
		}

		tags := recipe.Tags
		if tags == nil {
			tags = []models.Tag{}
		}

		responses = append(responses, models.RecipeResponse{
			ID:               recipe.ID,
			Tags:             tags,
			Author:           author,
			Ingredients:      ingredients,
			IsFavorited:      favorited[recipe.ID],
			IsInShoppingCart: inCart[recipe.ID],
			Name:             recipe.Name,
			Image:            recipe.Image,
			Text:             recipe.Text,
			CookingTime:      recipe.CookingTime,
		})
	}

	return responses, nil
}

// recipeShort builds the toggle/subscription projection.
func recipeShort(recipe *models.Recipe) *models.RecipeShort {
	return &models.RecipeShort{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
