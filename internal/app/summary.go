package app

import (
	"time"

	"dailydiet/internal/model"
)

// BuildSummary folds a user's meals, already in chronological order, into the
// summary counters. The streak counts in-diet meals whose calendar days are
// exactly one day apart; a non-diet meal or any other day gap breaks it.
func BuildSummary(meals []model.Meal) model.Summary {
	summary := model.Summary{TotalMeals: len(meals)}

	var current int
	var prevDay time.Time
	var havePrev bool

	for _, meal := range meals {
		day := calendarDay(meal.OccurredAt())

		if meal.InDiet {
			summary.TotalMealsInDiet++
			if havePrev && day.Sub(prevDay) == 24*time.Hour {
				current++
			} else {
				current = 1
			}
			if current > summary.LongestDietStreak {
				summary.LongestDietStreak = current
			}
		} else {
			summary.TotalMealsOutOfDiet++
			current = 0
		}

		prevDay = day
		havePrev = true
	}

	return summary
}

// calendarDay normalizes to UTC midnight so "one day apart" does not depend on
// the client's time zone offset.
func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
