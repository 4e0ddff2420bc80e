package model

import "time"

type Meal struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	Name        string     `gorm:"size:128;not null" json:"name"`
	Date        *time.Time `json:"date,omitempty"`
	Description string     `gorm:"type:text;not null" json:"description"`
	InDiet      bool       `gorm:"not null" json:"in_diet"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OccurredAt is the timestamp the streak scan orders by: the meal date when the
// client provided one, the insertion time otherwise.
func (m *Meal) OccurredAt() time.Time {
	if m.Date != nil {
		return *m.Date
	}
	return m.CreatedAt
}

type Summary struct {
	TotalMeals          int `json:"totalMeals"`
	TotalMealsInDiet    int `json:"totalMealsInDiet"`
	TotalMealsOutOfDiet int `json:"totalMealsOutOfDiet"`
	LongestDietStreak   int `json:"longestDietStreak"`
}
