package services

import (
	"testing"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(t, db)

	author := createTestUser(t, db, "alice")
	breakfast := createTestTag(t, db, "breakfast")
	dinner := createTestTag(t, db, "dinner")
	flour := createTestIngredient(t, db, "Flour", "g")
	milk := createTestIngredient(t, db, "Milk", "ml")

	resp, err := svc.CreateRecipe(author.ID, models.RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 20,
		Image:       testImageURI(),
		Tags:        []uint{breakfast.ID, dinner.ID},
		Ingredients: []models.RecipeIngredientInput{
			{ID: flour.ID, Amount: 200},
			{ID: milk.ID, Amount: 300},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", resp.Name)
	assert.Equal(t, 20, resp.CookingTime)
	assert.Equal(t, "alice", resp.Author.Username)
	assert.NotEmpty(t, resp.Image)
	assert.Len(t, resp.Tags, 2)

	require.Len(t, resp.Ingredients, 2)
	amounts := map[string]int{}
	for _, item := range resp.Ingredients {
		amounts[item.Name] = item.Amount
	}
	assert.Equal(t, 200, amounts["Flour"])
	assert.Equal(t, 300, amounts["Milk"])

	// Author viewing their own fresh recipe has no flags set
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
}

func TestCreateRecipeValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(t, db)

	author := createTestUser(t, db, "bob")
	tag := createTestTag(t, db, "lunch")
	salt := createTestIngredient(t, db, "Salt", "g")

	valid := models.RecipeInput{
		Name:        "Soup",
		Text:        "Boil",
		CookingTime: 30,
		Image:       testImageURI(),
		Tags:        []uint{tag.ID},
		Ingredients: []models.RecipeIngredientInput{{ID: salt.ID, Amount: 5}},
	}

	tests := []struct {
		name   string
		mutate func(*models.RecipeInput)
		field  string
	}{
		{"zero cooking time", func(in *models.RecipeInput) { in.CookingTime = 0 }, "cooking_time"},
		{"no tags", func(in *models.RecipeInput) { in.Tags = nil }, "tags"},
		{"unknown tag", func(in *models.RecipeInput) { in.Tags = []uint{9999} }, "tags"},
		{"no ingredients", func(in *models.RecipeInput) { in.Ingredients = nil }, "ingredients"},
		{"zero amount", func(in *models.RecipeInput) {
			in.Ingredients = []models.RecipeIngredientInput{{ID: salt.ID, Amount: 0}}
		}, "amount"},
		{"duplicate ingredient", func(in *models.RecipeInput) {
			in.Ingredients = []models.RecipeIngredientInput{{ID: salt.ID, Amount: 1}, {ID: salt.ID, Amount: 2}}
		}, "ingredients"},
		{"unknown ingredient", func(in *models.RecipeInput) {
			in.Ingredients = []models.RecipeIngredientInput{{ID: 9999, Amount: 1}}
		}, "ingredients"},
		{"missing image", func(in *models.RecipeInput) { in.Image = "" }, "image"},
		{"malformed image", func(in *models.RecipeInput) { in.Image = "not-a-data-uri" }, "image"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			_, err := svc.CreateRecipe(author.ID, input)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.field, validation.Field)
		})
	}
}

func TestUpdateRecipeReplacesIngredientsAndTags(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(t, db)

	author := createTestUser(t, db, "carol")
	breakfast := createTestTag(t, db, "breakfast")
	dinner := createTestTag(t, db, "dinner")
	flour := createTestIngredient(t, db, "Flour", "g")
	sugar := createTestIngredient(t, db, "Sugar", "g")

	recipe := createTestRecipe(t, db, author, "cake", []models.Tag{*breakfast},
		[]models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}})

	resp, err := svc.UpdateRecipe(recipe.ID, author.ID, models.RecipeInput{
		Name:        "Better cake",
		Text:        "Improved steps",
		CookingTime: 45,
		Tags:        []uint{dinner.ID},
		Ingredients: []models.RecipeIngredientInput{{ID: sugar.ID, Amount: 50}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Better cake", resp.Name)
	assert.Equal(t, 45, resp.CookingTime)
	// No new image supplied, the stored one survives
	assert.Equal(t, recipe.Image, resp.Image)

	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "dinner", resp.Tags[0].Slug)

	// The old ingredient rows are gone, not merged
	var rows []models.RecipeIngredient
	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, sugar.ID, rows[0].IngredientID)
	assert.Equal(t, 50, rows[0].Amount)
}

func TestListRecipesTagFilterMatchesAny(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(t, db)

	author := createTestUser(t, db, "dave")
	breakfast := createTestTag(t, db, "breakfast")
	lunch := createTestTag(t, db, "lunch")
	dinner := createTestTag(t, db, "dinner")

	createTestRecipe(t, db, author, "porridge", []models.Tag{*breakfast}, nil)
	createTestRecipe(t, db, author, "salad", []models.Tag{*lunch}, nil)
	createTestRecipe(t, db, author, "steak", []models.Tag{*dinner}, nil)

	results, count, err := svc.ListRecipes(RecipeFilter{TagSlugs: []string{"breakfast", "lunch"}}, 0, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, results, 2)

	names := []string{results[0].Name, results[1].Name}
	assert.ElementsMatch(t, []string{"porridge", "salad"}, names)
}

func TestListRecipesPaginationNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(t, db)

	author := createTestUser(t, db, "erin")
	first := createTestRecipe(t, db, author, "first", nil, nil)
	second := createTestRecipe(t, db, author, "second", nil, nil)
	third := createTestRecipe(t, db, author, "third", nil, nil)

	page1, count, err := svc.ListRecipes(RecipeFilter{AuthorID: author.ID}, 0, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, page1, 2)
	assert.Equal(t, third.ID, page1[0].ID)
	assert.Equal(t, second.ID, page1[1].ID)

	page2, _, err := svc.ListRecipes(RecipeFilter{AuthorID: author.ID}, 0, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, first.ID, page2[0].ID)
}

func TestListRecipesViewerFlags(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(t, db)

	author := createTestUser(t, db, "frank")
	viewer := createTestUser(t, db, "grace")

	favored := createTestRecipe(t, db, author, "favored", nil, nil)
	carted := createTestRecipe(t, db, author, "carted", nil, nil)
	createTestRecipe(t, db, author, "plain", nil, nil)

	require.NoError(t, db.Create(&models.Favorite{UserID: viewer.ID, RecipeID: favored.ID}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: viewer.ID, RecipeID: carted.ID}).Error)
	require.NoError(t, db.Create(&models.Subscription{SubscriberID: viewer.ID, AuthorID: author.ID}).Error)

	results, _, err := svc.ListRecipes(RecipeFilter{}, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	byName := map[string]models.RecipeResponse{}
	for _, r := range results {
		byName[r.Name] = r
	}
	assert.True(t, byName["favored"].IsFavorited)
	assert.False(t, byName["favored"].IsInShoppingCart)
	assert.True(t, byName["carted"].IsInShoppingCart)
	assert.False(t, byName["carted"].IsFavorited)
	assert.True(t, byName["plain"].Author.IsSubscribed)

	// The favorited narrowing only applies to the authenticated viewer
	onlyFavored, count, err := svc.ListRecipes(RecipeFilter{Favorited: true}, viewer.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, onlyFavored, 1)
	assert.Equal(t, "favored", onlyFavored[0].Name)

	// Anonymous viewers get the unfiltered list with false flags
	anonymous, count, err := svc.ListRecipes(RecipeFilter{Favorited: true}, 0, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	for _, r := range anonymous {
		assert.False(t, r.IsFavorited)
		assert.False(t, r.IsInShoppingCart)
		assert.False(t, r.Author.IsSubscribed)
	}
}

func TestDeleteRecipeRemovesOwnedRows(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestRecipeService(t, db)

	author := createTestUser(t, db, "heidi")
	fan := createTestUser(t, db, "ivan")
	tag := createTestTag(t, db, "dinner")
	salt := createTestIngredient(t, db, "Salt", "g")

	recipe := createTestRecipe(t, db, author, "stew", []models.Tag{*tag},
		[]models.RecipeIngredient{{IngredientID: salt.ID, Amount: 3}})
	require.NoError(t, db.Create(&models.Favorite{UserID: fan.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: fan.ID, RecipeID: recipe.ID}).Error)

	require.NoError(t, svc.DeleteRecipe(recipe.ID))

	var n int64
	db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&n)
	assert.EqualValues(t, 0, n)
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&n)
	assert.EqualValues(t, 0, n)
	db.Model(&models.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&n)
	assert.EqualValues(t, 0, n)
	db.Model(&models.CartItem{}).Where("recipe_id = ?", recipe.ID).Count(&n)
	assert.EqualValues(t, 0, n)

	// Referenced reference data survives
	db.Model(&models.Ingredient{}).Count(&n)
	assert.EqualValues(t, 1, n)
	db.Model(&models.Tag{}).Count(&n)
	assert.EqualValues(t, 1, n)
}
