package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxProjectNameLength bounds CharityProject.Name in runes.
const MaxProjectNameLength = 100

// CharityProject is a fundraising target that donations are invested into.
type CharityProject struct {
	Funding
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p *CharityProject) Kind() Kind       { return KindProject }
func (p *CharityProject) Funds() *Funding { return &p.Funding }

// CharityProjectCreate is the input of a project creation.
type CharityProjectCreate struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	FullAmount  decimal.Decimal `json:"full_amount"`
}

// CharityProjectUpdate is a partial update; nil fields are left untouched.
type CharityProjectUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	FullAmount  *decimal.Decimal `json:"full_amount"`
}

// NewCharityProject builds an uninvested project from validated input
func NewCharityProject(in CharityProjectCreate, now time.Time) *CharityProject {
	return &CharityProject{
		Funding:     newFunding(in.FullAmount, now),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
}

func (in *CharityProjectCreate) Validate() error {
	if err := validateProjectName(in.Name); err != nil {
		return err
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrProjectDescriptionRequired
	}
	return ValidateAmount("full_amount", in.FullAmount)
}

func (in *CharityProjectUpdate) Validate() error {
	if in.Name != nil {
		if err := validateProjectName(*in.Name); err != nil {
			return err
		}
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		return ErrProjectDescriptionRequired
	}
	if in.FullAmount != nil {
		return ValidateAmount("full_amount", *in.FullAmount)
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (in *CharityProjectUpdate) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.FullAmount == nil
}

// Apply copies the present patch fields onto the project. When the new target
// equals what is already invested, the project closes at now.
func (p *CharityProject) Apply(in CharityProjectUpdate, now time.Time) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.FullAmount != nil {
		p.FullAmount = *in.FullAmount
		p.CloseIfFull(now)
	}
}

func (p *CharityProject) Validate() error {
	if err := validateProjectName(p.Name); err != nil {
		return err
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrProjectDescriptionRequired
	}
	return p.Funding.Validate()
}

func validateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrProjectNameRequired
	}
	if len([]rune(name)) > MaxProjectNameLength {
		return ErrProjectNameTooLong
	}
	return nil
}

var (
	ErrProjectNameRequired        = newValidationError("name", "Project name is required")
	ErrProjectNameTooLong         = newValidationError("name", "Project name must be at most 100 characters")
	ErrProjectDescriptionRequired = newValidationError("description", "Project description is required")
)
