package finance

import (
	"context"

	"github.com/fintrack/backend/internal/application/common"
	"github.com/fintrack/backend/internal/domain/finance"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalService handles savings goal operations
type GoalService struct {
	common.EventSupport
	goalRepo finance.GoalRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo finance.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// Create creates a goal
func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req CreateGoalRequest) (*GoalResponse, error) {
	initial := decimal.Zero
	if req.CurrentAmount != nil {
		initial = *req.CurrentAmount
	}
	goal, err := finance.NewGoal(userID, req.Title, *req.TargetAmount, initial, req.Deadline.TimePtr(), req.ReminderEnabled)
	if err != nil {
		return nil, err
	}
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		return nil, err
	}
	s.PublishEvents(ctx, goal)

	resp := ToGoalResponse(goal)
	return &resp, nil
}

// GetByID retrieves one of the user's goals
func (s *GoalService) GetByID(ctx context.Context, userID, id uuid.UUID) (*GoalResponse, error) {
	goal, err := shared.FindOwned[finance.Goal](ctx, s.goalRepo, id, userID)
	if err != nil {
		return nil, err
	}
	resp := ToGoalResponse(goal)
	return &resp, nil
}

// List returns every goal of the user ordered by deadline
func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]GoalResponse, error) {
	goals, err := s.goalRepo.FindAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]GoalResponse, len(goals))
	for i := range goals {
		items[i] = ToGoalResponse(&goals[i])
	}
	return items, nil
}

// Update edits a goal definition. The saved amount is left untouched.
func (s *GoalService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateGoalRequest) (*GoalResponse, error) {
	goal, err := shared.FindOwned[finance.Goal](ctx, s.goalRepo, id, userID)
	if err != nil {
		return nil, err
	}

	title, target, deadline, reminder := goal.Title, goal.TargetAmount, goal.Deadline, goal.ReminderEnabled
	if req.Title != nil {
		title = *req.Title
	}
	if req.TargetAmount != nil {
		target = *req.TargetAmount
	}
	if req.Deadline != nil {
		deadline = req.Deadline.TimePtr()
	}
	if req.ReminderEnabled != nil {
		reminder = *req.ReminderEnabled
	}

	if err := goal.Update(title, target, deadline, reminder); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		return nil, err
	}
	s.PublishEvents(ctx, goal)

	resp := ToGoalResponse(goal)
	return &resp, nil
}

// AddAmount increases the saved amount of a goal
func (s *GoalService) AddAmount(ctx context.Context, userID, id uuid.UUID, req AddAmountRequest) (*GoalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "goal", "add_amount")
	defer span.End()

	goal, err := shared.FindOwned[finance.Goal](ctx, s.goalRepo, id, userID)
	if err != nil {
		return nil, err
	}
	if err := goal.AddAmount(*req.Amount); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.PublishEvents(ctx, goal)

	resp := ToGoalResponse(goal)
	return &resp, nil
}

// Delete removes a goal
func (s *GoalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	goal, err := shared.FindOwned[finance.Goal](ctx, s.goalRepo, id, userID)
	if err != nil {
		return err
	}
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		return err
	}
	goal.MarkDeleted()
	s.PublishEvents(ctx, goal)
	return nil
}
