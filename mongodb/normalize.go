package mongodb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// normalizeProfile turns a loosely typed stored document into a UserProfile.
// Missing fields default to their zero value; amounts that are not numbers,
// not finite or negative reject the whole document.
func normalizeProfile(userID string, raw bson.M) (*models.UserProfile, error) {
	p := &models.UserProfile{
		UserID:         userID,
		Name:           text(raw["name"]),
		Email:          text(raw["email"]),
		ShortTermGoals: text(raw["shortTermGoals"]),
		LongTermGoals:  text(raw["longTermGoals"]),
	}

	for field, dst := range map[string]*float64{
		"income":   &p.Income,
		"expenses": &p.Expenses,
		"emi":      &p.EMI,
	} {
		v, err := amount(raw[field])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrMalformedProfile, field, err)
		}
		*dst = v
	}

	var err error
	if p.CreatedAt, err = timestamp(raw["createdAt"]); err != nil {
		return nil, fmt.Errorf("%w: createdAt: %v", models.ErrMalformedProfile, err)
	}
	if p.UpdatedAt, err = timestamp(raw["updatedAt"]); err != nil {
		return nil, fmt.Errorf("%w: updatedAt: %v", models.ErrMalformedProfile, err)
	}
	return p, nil
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func amount(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case int:
		f = float64(t)
	case bson.Decimal128:
		parsed, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not finite")
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount %v", f)
	}
	return f, nil
}

func timestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case bson.DateTime:
		return t.Time().UTC(), nil
	case time.Time:
		return t.UTC(), nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, err
		}
		return parsed.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T", v)
	}
}
