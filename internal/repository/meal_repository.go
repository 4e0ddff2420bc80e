package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"dailydiet/internal/model"
)

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(meal *model.Meal) error {
	if err := r.db.Create(meal).Error; err != nil {
		return fmt.Errorf("create meal failed: %w", err)
	}
	return nil
}

// GetByID loads a meal without scoping to an owner. Ownership is checked in the
// service so that a foreign meal answers 403 rather than 404.
func (r *MealRepository) GetByID(id string) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.Where("id = ?", id).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query meal by id failed: %w", err)
	}
	return &meal, nil
}

func (r *MealRepository) Update(meal *model.Meal) error {
	if err := r.db.Save(meal).Error; err != nil {
		return fmt.Errorf("update meal failed: %w", err)
	}
	return nil
}

func (r *MealRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Meal{}).Error; err != nil {
		return fmt.Errorf("delete meal failed: %w", err)
	}
	return nil
}

func (r *MealRepository) ListByUserID(userID string) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals failed: %w", err)
	}
	return meals, nil
}

// ListByUserIDChronological orders by meal date with created_at as tie-breaker
// and substitute for undated rows; the streak scan depends on this ordering.
func (r *MealRepository) ListByUserIDChronological(userID string) ([]model.Meal, error) {
	var meals []model.Meal
	err := r.db.
		Where("user_id = ?", userID).
		Order("COALESCE(date, created_at) ASC, created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("list meals chronologically failed: %w", err)
	}
	return meals, nil
}
