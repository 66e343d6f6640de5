package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("loan not found")
	ErrNotOwned  = errors.New("loan not owned by user")
	ErrDeleted   = errors.New("loan is deleted")
	ErrDefaulted = errors.New("loan is in default")
)

type Type string

const (
	TypePersonal  Type = "personal"
	TypeHome      Type = "home"
	TypeAuto      Type = "auto"
	TypeEducation Type = "education"
)

// Types lists the accepted loan types, in the order validation reports them.
func Types() []Type {
	return []Type{TypePersonal, TypeHome, TypeAuto, TypeEducation}
}

func (t Type) Valid() bool {
	switch t {
	case TypePersonal, TypeHome, TypeAuto, TypeEducation:
		return true
	}
	return false
}

type Loan struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID        string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID        string         `gorm:"size:32;index:idx_loans_user" json:"user_id"`
	Type          Type           `gorm:"column:loan_type;type:enum('personal','home','auto','education')" json:"loan_type"`
	Amount        float64        `gorm:"column:loan_amount;type:decimal(18,2)" json:"loan_amount"`
	TenureMonths  int            `gorm:"column:loan_tenure" json:"loan_tenure"`
	MonthlyEMI    float64        `gorm:"column:monthly_emi;type:decimal(18,2)" json:"monthly_emi"`
	InterestRate  float64        `gorm:"column:interest_rate;type:decimal(6,3)" json:"interest_rate"`
	StartDate     time.Time      `gorm:"column:loan_start_date" json:"loan_start_date"`
	MaturityDate  time.Time      `gorm:"column:loan_maturity_date" json:"loan_maturity_date"`
	DefaultStatus bool           `gorm:"column:default_status;default:false" json:"default_status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Deleted reports whether the loan has been soft-deleted.
func (l *Loan) Deleted() bool { return l.DeletedAt.Valid }
