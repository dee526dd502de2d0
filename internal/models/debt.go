package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNullField    = errors.New("field may not be null")
	ErrInvalidField = errors.New("invalid field value")
)

// Debt is a single liability tracked by its owner
type Debt struct {
	ID                   ID        `gorm:"primaryKey;size:36" json:"_id"`
	UserID               ID        `gorm:"index;size:36;not null" json:"user_id"`
	DebtType             string    `gorm:"size:100;not null" json:"debtType"`
	Name                 *string   `gorm:"size:255" json:"name"`
	CurrentBalance       float64   `gorm:"not null" json:"currentBalance"`
	AnnualPercentageRate float64   `gorm:"not null" json:"annualPercentageRate"`
	MinimumPayment       float64   `gorm:"not null" json:"minimumPayment"`
	CreatedAt            time.Time `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName specifies the table name for Debt model
func (Debt) TableName() string {
	return "debts"
}

// DocumentID returns the primary key
func (d Debt) DocumentID() ID {
	return d.ID
}

// DebtPatch is a partial update of a Debt. Fields that were not supplied are
// left unchanged. Only name may be supplied as null, which clears it.
type DebtPatch struct {
	DebtType             Optional[string]  `json:"debtType"`
	Name                 Optional[string]  `json:"name"`
	CurrentBalance       Optional[float64] `json:"currentBalance"`
	AnnualPercentageRate Optional[float64] `json:"annualPercentageRate"`
	MinimumPayment       Optional[float64] `json:"minimumPayment"`
}

// Validate rejects null for fields that cannot be cleared
func (p DebtPatch) Validate() error {
	nulls := []struct {
		field string
		null  bool
	}{
		{"debtType", p.DebtType.Null},
		{"currentBalance", p.CurrentBalance.Null},
		{"annualPercentageRate", p.AnnualPercentageRate.Null},
		{"minimumPayment", p.MinimumPayment.Null},
	}
	for _, n := range nulls {
		if n.null {
			return fmt.Errorf("%w: %s", ErrNullField, n.field)
		}
	}
	if p.DebtType.HasValue() && (p.DebtType.Value == "" || len(p.DebtType.Value) > 100) {
		return fmt.Errorf("%w: debtType", ErrInvalidField)
	}
	if p.Name.HasValue() && len(p.Name.Value) > 255 {
		return fmt.Errorf("%w: name", ErrInvalidField)
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing
func (p DebtPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the supplied fields keyed by column name. A null name maps to nil.
func (p DebtPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.DebtType.HasValue() {
		fields["debt_type"] = p.DebtType.Value
	}
	if p.Name.Set {
		if p.Name.Null {
			fields["name"] = nil
		} else {
			fields["name"] = p.Name.Value
		}
	}
	if p.CurrentBalance.HasValue() {
		fields["current_balance"] = p.CurrentBalance.Value
	}
	if p.AnnualPercentageRate.HasValue() {
		fields["annual_percentage_rate"] = p.AnnualPercentageRate.Value
	}
	if p.MinimumPayment.HasValue() {
		fields["minimum_payment"] = p.MinimumPayment.Value
	}
	return fields
}
