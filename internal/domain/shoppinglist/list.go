// Package shoppinglist contains the shopping list domain model: a per-user
// list of ingredients aggregated from recipes, with quantity merging and
// public share tokens.
package shoppinglist

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tastebite/platform/internal/domain/recipe"
)

var (
	ErrItemNameRequired = errors.New("item name is required")
	ErrItemNotFound     = errors.New("shopping list item not found")
	ErrListNotFound     = errors.New("shopping list not found")
)

// Item is one shopping list entry. Quantity and Unit are the merged totals
// of every ingredient that aggregated into it; Measure keeps the original
// free-text form for entries whose quantity could not be parsed.
type Item struct {
	ID       uuid.UUID
	Name     string
	Quantity float64
	Unit     string
	Measure  string
	Checked  bool
	AddedAt  time.Time
}

// List is a user's shopping list aggregate.
type List struct {
	id         uuid.UUID
	userID     uuid.UUID
	items      []Item
	shareToken string
	updatedAt  time.Time
}

// New creates an empty list for a user.
func New(userID uuid.UUID) *List {
	return &List{
		id:        uuid.New(),
		userID:    userID,
		updatedAt: time.Now(),
	}
}

func (l *List) ID() uuid.UUID        { return l.id }
func (l *List) UserID() uuid.UUID    { return l.userID }
func (l *List) Items() []Item        { return l.items }
func (l *List) ShareToken() string   { return l.shareToken }
func (l *List) UpdatedAt() time.Time { return l.updatedAt }

// AddIngredients merges a recipe's ingredients into the list. Ingredients
// with the same normalized name and unit accumulate into one item; entries
// with unparseable measures are kept as separate free-text items.
func (l *List) AddIngredients(ingredients []recipe.Ingredient) {
	for _, ing := range ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}

		qty, unit, ok := recipe.ParseMeasure(ing.Measure)
		if !ok && ing.Measure != "" {
			l.items = append(l.items, Item{
				ID:      uuid.New(),
				Name:    name,
				Measure: ing.Measure,
				AddedAt: time.Now(),
			})
			continue
		}

		if merged := l.merge(name, qty, unit); !merged {
			l.items = append(l.items, Item{
				ID:       uuid.New(),
				Name:     name,
				Quantity: qty,
				Unit:     unit,
				AddedAt:  time.Now(),
			})
		}
	}
	l.updatedAt = time.Now()
}

// AddItem appends a manually entered item.
func (l *List) AddItem(name, measure string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrItemNameRequired
	}
	if !recipe.ValidMeasure(measure) {
		return Item{}, recipe.ErrInvalidMeasure
	}

	qty, unit, _ := recipe.ParseMeasure(measure)
	item := Item{
		ID:       uuid.New(),
		Name:     name,
		Quantity: qty,
		Unit:     unit,
		AddedAt:  time.Now(),
	}
	l.items = append(l.items, item)
	l.updatedAt = time.Now()
	return item, nil
}

// ToggleItem flips an item's checked state.
func (l *List) ToggleItem(itemID uuid.UUID) error {
	for i := range l.items {
		if l.items[i].ID == itemID {
			l.items[i].Checked = !l.items[i].Checked
			l.updatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem deletes an item from the list.
func (l *List) RemoveItem(itemID uuid.UUID) error {
	for i := range l.items {
		if l.items[i].ID == itemID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.updatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear removes every item.
func (l *List) Clear() {
	l.items = nil
	l.updatedAt = time.Now()
}

// Share assigns a share token if the list has none, and returns it. The
// token grants read-only public access to the list.
func (l *List) Share() (string, error) {
	if l.shareToken != "" {
		return l.shareToken, nil
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	l.shareToken = hex.EncodeToString(buf)
	l.updatedAt = time.Now()
	return l.shareToken, nil
}

// Unshare revokes the share token.
func (l *List) Unshare() {
	l.shareToken = ""
	l.updatedAt = time.Now()
}

func (l *List) merge(name string, qty float64, unit string) bool {
	key := strings.ToLower(name)
	for i := range l.items {
		if l.items[i].Measure != "" {
			continue
		}
		if strings.ToLower(l.items[i].Name) == key && l.items[i].Unit == unit {
			l.items[i].Quantity += qty
			return true
		}
	}
	return false
}

// Rehydrate reconstructs a List from persisted state, for repository
// mappers only.
func Rehydrate(id, userID uuid.UUID, items []Item, shareToken string, updatedAt time.Time) *List {
	return &List{
		id:         id,
		userID:     userID,
		items:      items,
		shareToken: shareToken,
		updatedAt:  updatedAt,
	}
}
