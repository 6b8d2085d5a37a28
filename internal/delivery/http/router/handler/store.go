// Package handler contains the HTTP handlers for the development stub
// backend. The stub mirrors the production API's envelope, status codes, and
// absence messages, backed by in-memory state.
package handler

import (
	"sort"
	"sync"
	"time"

	"primeform/internal/domain/entity"
	"primeform/internal/errors"

	"github.com/google/uuid"
)

// account pairs a user with its login password. The stub stores passwords in
// the clear; it never leaves the developer's machine.
type account struct {
	user     entity.User
	password string
}

// Store holds the stub backend's state. All maps are keyed by user id unless
// noted otherwise.
type Store struct {
	mu sync.Mutex

	accounts      map[string]*account // keyed by email
	dietPlans     map[string]*entity.DietPlan
	workoutPlans  map[string]*entity.WorkoutPlan
	completions   map[string][]*entity.CompletionRecord
	subscriptions map[string]*entity.Subscription
	notifications map[string][]*entity.Notification
}

// NewStore creates an empty stub state.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]*account),
		dietPlans:     make(map[string]*entity.DietPlan),
		workoutPlans:  make(map[string]*entity.WorkoutPlan),
		completions:   make(map[string][]*entity.CompletionRecord),
		subscriptions: make(map[string]*entity.Subscription),
		notifications: make(map[string][]*entity.Notification),
	}
}

var (
	errEmailTaken         = errors.New("email already registered")
	errInvalidCredentials = errors.New("invalid credentials")
	errUnknownUser        = errors.New("unknown user")
)

// CreateAccount registers a new user and returns it.
func (s *Store) CreateAccount(name, email, password string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return nil, errEmailTaken
	}

	now := time.Now().UTC()
	user := entity.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[email] = &account{user: user, password: password}

	s.notifications[user.ID] = []*entity.Notification{{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Kind:      "reminder",
		Title:     "Welcome to PrimeForm",
		Body:      "Finish onboarding to generate your first plan.",
		CreatedAt: now,
	}}

	return &user, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *Store) Authenticate(email, password string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.accounts[email]
	if !exists || acct.password != password {
		return nil, errInvalidCredentials
	}

	user := acct.user

	return &user, nil
}

// User returns the user by id.
func (s *Store) User(userID string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accountByID(userID)
	if acct == nil {
		return nil, errUnknownUser
	}

	user := acct.user

	return &user, nil
}

func (s *Store) accountByID(userID string) *account {
	for _, acct := range s.accounts {
		if acct.user.ID == userID {
			return acct
		}
	}

	return nil
}

// SaveProfile stores the onboarding answers against the user.
func (s *Store) SaveProfile(userID string, profile *entity.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accountByID(userID)
	if acct == nil {
		return errors.WithStack(errUnknownUser)
	}

	profile.UserID = userID
	profile.OnboardingComplete = true
	profile.UpdatedAt = time.Now().UTC()
	acct.user.Profile = profile
	acct.user.UpdatedAt = profile.UpdatedAt

	return nil
}

// UpdateUser applies a partial profile patch.
func (s *Store) UpdateUser(userID string, name *string, weightKG, targetWeightKG *float64, workoutsPerWeek *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accountByID(userID)
	if acct == nil {
		return errors.WithStack(errUnknownUser)
	}

	if name != nil {
		acct.user.Name = *name
	}
	if acct.user.Profile != nil {
		if weightKG != nil {
			acct.user.Profile.WeightKG = *weightKG
		}
		if targetWeightKG != nil {
			acct.user.Profile.TargetWeightKG = *targetWeightKG
		}
		if workoutsPerWeek != nil {
			acct.user.Profile.WorkoutsPerWeek = *workoutsPerWeek
		}
		acct.user.Profile.UpdatedAt = time.Now().UTC()
	}
	acct.user.UpdatedAt = time.Now().UTC()

	return nil
}

// Profile returns the stored onboarding profile, or nil.
func (s *Store) Profile(userID string) *entity.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accountByID(userID)
	if acct == nil {
		return nil
	}

	return acct.user.Profile
}

// DietPlan returns the user's active diet plan, or nil.
func (s *Store) DietPlan(userID string) *entity.DietPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dietPlans[userID]
}

// SetDietPlan replaces the user's active diet plan.
func (s *Store) SetDietPlan(userID string, plan *entity.DietPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dietPlans[userID] = plan
}

// WorkoutPlan returns the user's active workout plan, or nil.
func (s *Store) WorkoutPlan(userID string) *entity.WorkoutPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.workoutPlans[userID]
}

// SetWorkoutPlan replaces the user's active workout plan.
func (s *Store) SetWorkoutPlan(userID string, plan *entity.WorkoutPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workoutPlans[userID] = plan
}

// AddCompletion records a completed plan day. Completing the same day twice
// returns the existing record.
func (s *Store) AddCompletion(userID, planType, date string) *entity.CompletionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.completions[userID] {
		if record.PlanType == planType && record.Date == date {
			return record
		}
	}

	record := &entity.CompletionRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlanType:    planType,
		Date:        date,
		CompletedAt: time.Now().UTC(),
	}
	s.completions[userID] = append(s.completions[userID], record)

	return record
}

// Completions returns the user's completion history, oldest first.
func (s *Store) Completions(userID string) []*entity.CompletionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*entity.CompletionRecord, len(s.completions[userID]))
	copy(records, s.completions[userID])
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	return records
}

// Streak derives run lengths from the completion history for one plan type.
func (s *Store) Streak(userID, planType string) *entity.Streak {
	records := s.Completions(userID)

	dates := make([]string, 0, len(records))
	for _, record := range records {
		if record.PlanType == planType {
			dates = append(dates, record.Date)
		}
	}

	streak := &entity.Streak{PlanType: planType, TotalComplete: len(dates)}
	run := 0
	var prev time.Time
	for _, date := range dates {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		if run > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > streak.Longest {
			streak.Longest = run
		}
		prev = day
	}

	// The current streak only counts if it reaches today or yesterday.
	if run > 0 {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if today.Sub(prev) <= 24*time.Hour {
			streak.Current = run
		}
	}

	return streak
}

// Subscription returns the user's paid subscription, or nil for free-tier
// users.
func (s *Store) Subscription(userID string) *entity.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.subscriptions[userID]
}

// SetSubscription grants the user a paid subscription.
func (s *Store) SetSubscription(userID, plan string) *entity.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	renews := now.AddDate(0, 1, 0)
	if plan == "yearly" {
		renews = now.AddDate(1, 0, 0)
	}
	sub := &entity.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Plan:      plan,
		IsActive:  true,
		RenewsAt:  &renews,
		StartedAt: now,
		UpdatedAt: now,
	}
	s.subscriptions[userID] = sub

	return sub
}

// Notifications returns the user's feed, newest first.
func (s *Store) Notifications(userID string) []*entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*entity.Notification, len(s.notifications[userID]))
	copy(items, s.notifications[userID])
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	return items
}

// AddNotification queues a message for the user.
func (s *Store) AddNotification(userID, kind, title, body string) *entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := &entity.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	s.notifications[userID] = append(s.notifications[userID], item)

	return item
}

// MarkNotificationRead flags one notification as read.
func (s *Store) MarkNotificationRead(userID, notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.notifications[userID] {
		if item.ID == notificationID {
			item.Read = true

			return true
		}
	}

	return false
}
