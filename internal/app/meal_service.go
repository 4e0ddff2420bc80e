package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"dailydiet/internal/model"
)

var (
	ErrMealNotFound  = errors.New("meal not found")
	ErrMealForbidden = errors.New("meal belongs to another user")
)

// MealStore is the slice of the meal repository the meal flow needs.
type MealStore interface {
	Create(meal *model.Meal) error
	GetByID(id string) (*model.Meal, error)
	Update(meal *model.Meal) error
	Delete(id string) error
	ListByUserID(userID string) ([]model.Meal, error)
	ListByUserIDChronological(userID string) ([]model.Meal, error)
}

type MealEventPublisher interface {
	Publish(ctx context.Context, event model.MealEvent) error
}

type SummaryCache interface {
	GetSummary(ctx context.Context, userID string) (*model.Summary, bool, error)
	SetSummary(ctx context.Context, userID string, summary model.Summary) error
	DeleteSummary(ctx context.Context, userID string) error
}

type MealService struct {
	mealStore    MealStore
	publisher    MealEventPublisher
	summaryCache SummaryCache
}

type MealInput struct {
	UserID      string
	Name        string
	Description string
	InDiet      bool
	Date        *time.Time
}

func NewMealService(mealStore MealStore, publisher MealEventPublisher, summaryCache SummaryCache) *MealService {
	return &MealService{
		mealStore:    mealStore,
		publisher:    publisher,
		summaryCache: summaryCache,
	}
}

func (s *MealService) CreateMeal(input MealInput) (*model.Meal, error) {
	name := strings.TrimSpace(input.Name)
	if input.UserID == "" || name == "" {
		return nil, ErrInvalidInput
	}

	meal := &model.Meal{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Name:        name,
		Date:        input.Date,
		Description: input.Description,
		InDiet:      input.InDiet,
	}
	if err := s.mealStore.Create(meal); err != nil {
		return nil, err
	}

	s.noteMealChanged(meal.UserID, meal.ID, model.MealEventCreated)
	return meal, nil
}

func (s *MealService) UpdateMeal(mealID string, input MealInput) (*model.Meal, error) {
	name := strings.TrimSpace(input.Name)
	if input.UserID == "" || mealID == "" || name == "" {
		return nil, ErrInvalidInput
	}

	meal, err := s.getOwnedMeal(input.UserID, mealID)
	if err != nil {
		return nil, err
	}

	meal.Name = name
	meal.Date = input.Date
	meal.Description = input.Description
	meal.InDiet = input.InDiet
	if err := s.mealStore.Update(meal); err != nil {
		return nil, err
	}

	s.noteMealChanged(meal.UserID, meal.ID, model.MealEventUpdated)
	return meal, nil
}

func (s *MealService) DeleteMeal(userID, mealID string) error {
	if userID == "" || mealID == "" {
		return ErrInvalidInput
	}

	meal, err := s.getOwnedMeal(userID, mealID)
	if err != nil {
		return err
	}
	if err := s.mealStore.Delete(meal.ID); err != nil {
		return err
	}

	s.noteMealChanged(userID, mealID, model.MealEventDeleted)
	return nil
}

func (s *MealService) GetMeal(userID, mealID string) (*model.Meal, error) {
	if userID == "" || mealID == "" {
		return nil, ErrInvalidInput
	}
	return s.getOwnedMeal(userID, mealID)
}

func (s *MealService) ListMeals(userID string) ([]model.Meal, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.mealStore.ListByUserID(userID)
}

func (s *MealService) Summary(userID string) (*model.Summary, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	ctx := context.Background()
	if s.summaryCache != nil {
		cached, hit, err := s.summaryCache.GetSummary(ctx, userID)
		if err != nil {
			log.Printf("summary cache read failed: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	summary, err := s.ComputeSummary(userID)
	if err != nil {
		return nil, err
	}

	if s.summaryCache != nil {
		if err := s.summaryCache.SetSummary(ctx, userID, *summary); err != nil {
			log.Printf("summary cache write failed: %v", err)
		}
	}
	return summary, nil
}

// ComputeSummary always goes to the store, bypassing the cache. The worker uses
// it to rebuild cache entries after meal events.
func (s *MealService) ComputeSummary(userID string) (*model.Summary, error) {
	meals, err := s.mealStore.ListByUserIDChronological(userID)
	if err != nil {
		return nil, err
	}
	summary := BuildSummary(meals)
	return &summary, nil
}

// getOwnedMeal is the shared load-and-authorize step behind get, update and
// delete: unknown id answers ErrMealNotFound, a foreign owner ErrMealForbidden.
func (s *MealService) getOwnedMeal(userID, mealID string) (*model.Meal, error) {
	meal, err := s.mealStore.GetByID(mealID)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, ErrMealNotFound
	}
	if meal.UserID != userID {
		return nil, ErrMealForbidden
	}
	return meal, nil
}

// noteMealChanged drops the cached summary and emits a meal event. Both are
// best-effort: a broker or cache outage must not fail the mutation itself.
func (s *MealService) noteMealChanged(userID, mealID, action string) {
	ctx := context.Background()
	if s.summaryCache != nil {
		if err := s.summaryCache.DeleteSummary(ctx, userID); err != nil {
			log.Printf("summary cache invalidation failed: %v", err)
		}
	}
	if s.publisher != nil {
		event := model.MealEvent{UserID: userID, MealID: mealID, Action: action}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("publish meal event failed: %v", err)
		}
	}
}
