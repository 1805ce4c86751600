package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "Verified"
	VerificationPending  VerificationStatus = "Pending"
)

// Certificate is a single completed course record owned by a user.
// Dates are kept as they appear in the dataset and parsed on demand.
type Certificate struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	CourseName         string             `json:"courseName"`
	Institution        string             `json:"institution"`
	Platform           string             `json:"platform"`
	Category           string             `json:"category"`
	CompletionDate     string             `json:"completionDate"`
	IssueDate          string             `json:"issueDate,omitempty"`
	ExpiryDate         string             `json:"expiryDate,omitempty"`
	Hours              float64            `json:"hours"`
	CreditsEarned      *float64           `json:"creditsEarned,omitempty"`
	Grade              *Grade             `json:"grade,omitempty"`
	Rating             *float64           `json:"rating,omitempty"`
	Instructor         string             `json:"instructor,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Skills             []string           `json:"skills"`
	Description        string             `json:"description"`
}

// Grade holds a grade that the dataset stores either as a JSON number or as
// a free-form string such as "85", "A+" or "Pass".
type Grade struct {
	Text   string
	Number bool
}

// NumericGrade returns a grade stored as a number.
func NumericGrade(v float64) *Grade {
	return &Grade{Text: strconv.FormatFloat(v, 'f', -1, 64), Number: true}
}

// TextGrade returns a grade stored as a string.
func TextGrade(s string) *Grade {
	return &Grade{Text: s}
}

// Value parses the grade as a finite number. A trailing percent sign is
// accepted.
func (g *Grade) Value() (float64, bool) {
	if g == nil {
		return 0, false
	}
	s := strings.TrimSuffix(strings.TrimSpace(g.Text), "%")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (g Grade) MarshalJSON() ([]byte, error) {
	if g.Number {
		return []byte(g.Text), nil
	}
	return json.Marshal(g.Text)
}

func (g *Grade) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty grade")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode grade: %w", err)
		}
		*g = Grade{Text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode grade: %w", err)
	}
	*g = Grade{Text: n.String(), Number: true}
	return nil
}
