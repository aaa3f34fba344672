package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipe is the aggregate root for a locally stored recipe. It covers both
// user-authored recipes and cached copies imported from the external
// catalog; only the local record accumulates ratings and comments.
type Recipe struct {
	id       uuid.UUID
	title    string
	category string
	area     string
	imageURL string

	ingredients  []Ingredient
	instructions []string

	authorID   uuid.UUID
	authorName string

	// externalID is set when this record mirrors an external catalog
	// recipe. It drives deduplication against live catalog results.
	externalID string

	ratings       []Rating
	averageRating float64
	favorites     int
	comments      []Comment

	createdAt time.Time
	updatedAt time.Time
}

// Ingredient pairs a name with a free-text quantity such as "100g".
type Ingredient struct {
	Name    string
	Measure string
}

// Validate checks the ingredient name and measure format.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrIngredientNameRequired
	}
	if !ValidMeasure(i.Measure) {
		return ErrInvalidMeasure
	}
	return nil
}

// Rating is one user's 1-5 star rating of a recipe.
type Rating struct {
	UserID    uuid.UUID
	Value     int
	CreatedAt time.Time
}

// Validate validates the rating value.
func (r Rating) Validate() error {
	if r.Value < 1 || r.Value > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Comment is a user comment on a recipe.
type Comment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Author    string
	Body      string
	CreatedAt time.Time
}

// NewRecipe creates a user-authored recipe with validation.
func NewRecipe(title, category, area string, authorID uuid.UUID, authorName string) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Recipe{
		id:         uuid.New(),
		title:      title,
		category:   category,
		area:       area,
		authorID:   authorID,
		authorName: authorName,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// NewImportedRecipe creates a local cached copy of an external catalog
// recipe. The copy starts unrated; the catalog carries no rating data.
func NewImportedRecipe(externalID, title, category, area, imageURL string, importerID uuid.UUID) (*Recipe, error) {
	if externalID == "" {
		return nil, ErrExternalIDRequired
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Recipe{
		id:         uuid.New(),
		title:      title,
		category:   category,
		area:       area,
		imageURL:   imageURL,
		externalID: externalID,
		authorID:   importerID,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func (r *Recipe) ID() uuid.UUID          { return r.id }
func (r *Recipe) Title() string          { return r.title }
func (r *Recipe) Category() string       { return r.category }
func (r *Recipe) Area() string           { return r.area }
func (r *Recipe) ImageURL() string       { return r.imageURL }
func (r *Recipe) Ingredients() []Ingredient { return r.ingredients }
func (r *Recipe) Instructions() []string { return r.instructions }
func (r *Recipe) AuthorID() uuid.UUID    { return r.authorID }
func (r *Recipe) AuthorName() string     { return r.authorName }
func (r *Recipe) ExternalID() string     { return r.externalID }
func (r *Recipe) Ratings() []Rating      { return r.ratings }
func (r *Recipe) AverageRating() float64 { return r.averageRating }
func (r *Recipe) RatingsCount() int      { return len(r.ratings) }
func (r *Recipe) Favorites() int         { return r.favorites }
func (r *Recipe) Comments() []Comment    { return r.comments }
func (r *Recipe) CreatedAt() time.Time   { return r.createdAt }
func (r *Recipe) UpdatedAt() time.Time   { return r.updatedAt }

// IsImported reports whether this record mirrors an external catalog recipe.
func (r *Recipe) IsImported() bool { return r.externalID != "" }

// UpdateDetails replaces the recipe's descriptive fields with validation.
func (r *Recipe) UpdateDetails(title, category, area, imageURL string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	r.title = title
	r.category = category
	r.area = area
	r.imageURL = imageURL
	r.updatedAt = time.Now()
	return nil
}

// SetIngredients replaces the ingredient list, validating every entry.
func (r *Recipe) SetIngredients(ingredients []Ingredient) error {
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	r.ingredients = ingredients
	r.updatedAt = time.Now()
	return nil
}

// SetInstructions replaces the instruction steps.
func (r *Recipe) SetInstructions(steps []string) error {
	for _, step := range steps {
		if strings.TrimSpace(step) == "" {
			return ErrEmptyInstruction
		}
	}
	r.instructions = steps
	r.updatedAt = time.Now()
	return nil
}

// Rate records or replaces the user's rating and recomputes the average.
// Authors cannot rate their own recipes.
func (r *Recipe) Rate(userID uuid.UUID, value int) error {
	rating := Rating{UserID: userID, Value: value, CreatedAt: time.Now()}
	if err := rating.Validate(); err != nil {
		return err
	}
	if !r.IsImported() && userID == r.authorID {
		return ErrCannotRateOwnRecipe
	}

	replaced := false
	for i, existing := range r.ratings {
		if existing.UserID == userID {
			r.ratings[i] = rating
			replaced = true
			break
		}
	}
	if !replaced {
		r.ratings = append(r.ratings, rating)
	}

	r.recalculateAverage()
	r.updatedAt = time.Now()
	return nil
}

// AddComment appends a comment to the recipe.
func (r *Recipe) AddComment(userID uuid.UUID, author, body string) (Comment, error) {
	if strings.TrimSpace(body) == "" {
		return Comment{}, ErrEmptyComment
	}
	if len(body) > 1000 {
		return Comment{}, ErrCommentTooLong
	}

	comment := Comment{
		ID:        uuid.New(),
		UserID:    userID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}
	r.comments = append(r.comments, comment)
	return comment, nil
}

// Favorite and Unfavorite adjust the favorite counter. Membership is
// tracked per-user by the repository; the entity only holds the count.
func (r *Recipe) Favorite()   { r.favorites++ }
func (r *Recipe) Unfavorite() {
	if r.favorites > 0 {
		r.favorites--
	}
}

// Summary projects the entity into the shape the browse pipeline consumes.
func (r *Recipe) Summary() Summary {
	s := Summary{
		ID:            r.id.String(),
		Title:         r.title,
		Category:      r.category,
		Area:          r.area,
		ImageURL:      r.imageURL,
		ExternalID:    r.externalID,
		AverageRating: r.averageRating,
		RatingsCount:  len(r.ratings),
	}
	if !r.IsImported() {
		s.AuthorID = r.authorID.String()
		s.AuthorName = r.authorName
	}
	return s
}

func (r *Recipe) recalculateAverage() {
	if len(r.ratings) == 0 {
		r.averageRating = 0
		return
	}
	var sum float64
	for _, rating := range r.ratings {
		sum += float64(rating.Value)
	}
	r.averageRating = sum / float64(len(r.ratings))
}

func validateTitle(title string) error {
	if len(title) < 3 {
		return ErrTitleTooShort
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}

// Rehydrate reconstructs a Recipe from persisted state. It is intended for
// repository mappers only and performs no validation.
func Rehydrate(
	id uuid.UUID,
	title, category, area, imageURL string,
	ingredients []Ingredient,
	instructions []string,
	authorID uuid.UUID,
	authorName, externalID string,
	ratings []Rating,
	favorites int,
	comments []Comment,
	createdAt, updatedAt time.Time,
) *Recipe {
	r := &Recipe{
		id:           id,
		title:        title,
		category:     category,
		area:         area,
		imageURL:     imageURL,
		ingredients:  ingredients,
		instructions: instructions,
		authorID:     authorID,
		authorName:   authorName,
		externalID:   externalID,
		ratings:      ratings,
		favorites:    favorites,
		comments:     comments,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
	r.recalculateAverage()
	return r
}
