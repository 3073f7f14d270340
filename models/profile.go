package models

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrMalformedProfile = errors.New("malformed profile document")
)

type UserProfile struct {
	UserID         string    `bson:"_id" json:"userId"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Income         float64   `bson:"income" json:"income"`
	Expenses       float64   `bson:"expenses" json:"expenses"`
	EMI            float64   `bson:"emi" json:"emi"`
	ShortTermGoals string    `bson:"shortTermGoals" json:"shortTermGoals"`
	LongTermGoals  string    `bson:"longTermGoals" json:"longTermGoals"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileFields is a partial write. Nil fields are left untouched on the
// stored document. Email is only honoured when the document is created.
type ProfileFields struct {
	Name           *string
	Email          *string
	Income         *float64
	Expenses       *float64
	EMI            *float64
	ShortTermGoals *string
	LongTermGoals  *string
}

// FieldsFromProfile sets every editable field from p.
func FieldsFromProfile(p UserProfile) ProfileFields {
	return ProfileFields{
		Name:           &p.Name,
		Income:         &p.Income,
		Expenses:       &p.Expenses,
		EMI:            &p.EMI,
		ShortTermGoals: &p.ShortTermGoals,
		LongTermGoals:  &p.LongTermGoals,
	}
}

// ProfileStore is the remote document store holding one profile per user.
type ProfileStore interface {
	CreateOrMerge(ctx context.Context, userID string, fields ProfileFields) error
	Read(ctx context.Context, userID string) (*UserProfile, error)
	Update(ctx context.Context, userID string, fields ProfileFields) error
}
