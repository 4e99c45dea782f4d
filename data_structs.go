package main

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bucket string

const (
	BucketGaming Bucket = "gaming"
	BucketTask   Bucket = "task"
)

type Plan string

const (
	PlanFree     Plan = "free"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// rank gives the total order free < standard < premium. Unknown plans rank below free.
func (p Plan) rank() int {
	switch p {
	case PlanFree:
		return 0
	case PlanStandard:
		return 1
	case PlanPremium:
		return 2
	}
	return -1
}

func (p Plan) Valid() bool {
	return p.rank() >= 0
}

type UserProfile struct {
	UserId                 string          `json:"user_id" gorm:"primaryKey;size:64"`
	Username               string          `json:"username"`
	GamingEarnings         decimal.Decimal `json:"gaming_earnings" gorm:"type:decimal(14,2);not null;default:0"`
	TaskEarnings           decimal.Decimal `json:"task_earnings" gorm:"type:decimal(14,2);not null;default:0"`
	Plan                   Plan            `json:"plan" gorm:"size:16;not null;default:free"`
	SpinCount              int64           `json:"spin_count" gorm:"not null;default:0"`
	IsBettingAccountActive bool            `json:"is_betting_account_active" gorm:"not null;default:false"`
	WelcomeRewardCollected bool            `json:"welcome_reward_collected" gorm:"not null;default:false"`
	Phone                  string          `json:"phone" gorm:"size:16"`
	ReferredBy             *string         `json:"-" gorm:"size:64"`
	History                []LedgerEntry   `json:"history,omitempty" gorm:"foreignKey:UserId;references:UserId"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"-"`
}

func (p UserProfile) Total() decimal.Decimal {
	return p.GamingEarnings.Add(p.TaskEarnings)
}

// LedgerEntry is append-only. Id order is chronological order.
type LedgerEntry struct {
	Id          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId      string          `json:"-" gorm:"index;size:64;not null"`
	Label       string          `json:"label" gorm:"not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Timestamp   time.Time       `json:"timestamp" gorm:"not null"`
	Reference   *string         `json:"reference,omitempty" gorm:"uniqueIndex;size:36"`
	CategoryId  *string         `json:"category_id,omitempty" gorm:"index;size:32"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Score       *int            `json:"score,omitempty"`
	Slot        *int            `json:"slot,omitempty"`
}

// ProfileSnapshot is what the change feed pushes. It is advisory only.
type ProfileSnapshot struct {
	UserId                 string          `json:"user_id"`
	GamingEarnings         decimal.Decimal `json:"gaming_earnings"`
	TaskEarnings           decimal.Decimal `json:"task_earnings"`
	Plan                   Plan            `json:"plan"`
	SpinCount              int64           `json:"spin_count"`
	IsBettingAccountActive bool            `json:"is_betting_account_active"`
	LastEntry              *LedgerEntry    `json:"last_entry,omitempty"`
}

func (p UserProfile) Snapshot() ProfileSnapshot {
	s := ProfileSnapshot{
		UserId:                 p.UserId,
		GamingEarnings:         p.GamingEarnings,
		TaskEarnings:           p.TaskEarnings,
		Plan:                   p.Plan,
		SpinCount:              p.SpinCount,
		IsBettingAccountActive: p.IsBettingAccountActive,
	}
	if n := len(p.History); n > 0 {
		last := p.History[n-1]
		s.LastEntry = &last
	}
	return s
}

type StakeReceipt struct {
	Id       string          `json:"id"`
	UserId   string          `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	IssuedAt time.Time       `json:"issued_at"`
}

type TaskCompletion struct {
	CategoryId string
	Tier       Plan
	Score      int
	Reward     decimal.Decimal
}

type Category struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Tier Plan   `json:"tier"`
}

type Question struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type TierCategoryMetadata struct {
	Tier     Plan            `json:"tier"`
	Duration time.Duration   `json:"duration"`
	Reward   decimal.Decimal `json:"reward"`
}

type SignUpBody struct {
	Username string `json:"username" validate:"required,max=64"`
	Phone    string `json:"phone" validate:"required"`
}

type AmountPhoneBody struct {
	Amount decimal.Decimal `json:"amount"`
	Phone  string          `json:"phone" validate:"required"`
}

type StakeBody struct {
	Stake decimal.Decimal `json:"stake"`
}

type PhoneBody struct {
	Phone string `json:"phone" validate:"required"`
}

type UpgradeBody struct {
	Plan Plan `json:"plan" validate:"required,oneof=standard premium"`
}

type CompleteTaskBody struct {
	Score int `json:"score" validate:"min=0"`
}

type SpinResult struct {
	Slot    int             `json:"slot"`
	Prize   decimal.Decimal `json:"prize"`
	Profile UserProfile     `json:"profile"`
}
