package domain

import (
	"time"

	"github.com/google/uuid"
)

// Plan is an account's subscription tier. The tier controls whether the
// account may use the API at all and how many non-terminal listings it
// may hold at once.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanStarter  Plan = "starter"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

// Valid reports whether p is a known plan.
func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro, PlanBusiness:
		return true
	}
	return false
}

// AllowsAPI reports whether the plan includes API access. Free accounts
// can use the web product but not the API.
func (p Plan) AllowsAPI() bool {
	return p != PlanFree && p.Valid()
}

// ListingLimit returns the maximum number of non-terminal listings the
// plan allows. A negative value means unlimited.
func (p Plan) ListingLimit() int {
	switch p {
	case PlanStarter:
		return 10
	case PlanPro:
		return 50
	case PlanBusiness:
		return -1
	default:
		return 2
	}
}

// Account is a marketplace seller account. Credentials belong to exactly
// one account, and every resource a credential touches is filtered by its
// account ID.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      Plan      `json:"plan"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAccount creates an account on the given plan.
func NewAccount(name, email string, plan Plan) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Email:     email,
		Plan:      plan,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
