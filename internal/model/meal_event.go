package model

const (
	MealEventCreated = "created"
	MealEventUpdated = "updated"
	MealEventDeleted = "deleted"
)

// MealEvent is published after every meal mutation so the summary cache can be
// rebuilt off the request path.
type MealEvent struct {
	UserID string `json:"user_id"`
	MealID string `json:"meal_id"`
	Action string `json:"action"`
}
