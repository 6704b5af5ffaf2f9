// Package jsa manages job safety analyses: a task broken into steps, each
// with its hazard and control measure, reviewed on a fixed date.
package jsa

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/ssma/internal/safety"
)

// Step is one stage of the analysed task.
type Step struct {
	Step    string `json:"step" validate:"required"`
	Hazard  string `json:"hazard" validate:"required"`
	Control string `json:"control" validate:"required"`
}

// Steps is stored as a JSONB array.
type Steps []Step

func (s Steps) Value() (driver.Value, error) {
	if s == nil {
		s = Steps{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (s *Steps) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Steps{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into jsa.Steps", src)
	}
	return json.Unmarshal(data, s)
}

type Analysis struct {
	ID          uuid.UUID     `json:"id"`
	Task        string        `json:"task"`
	Department  string        `json:"department"`
	Responsible string        `json:"responsible"`
	Steps       Steps         `json:"steps"`
	ReviewOn    *safety.Date  `json:"review_on"`
	Status      safety.Status `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Command struct {
	Task        string        `json:"task" validate:"required,max=200"`
	Department  string        `json:"department" validate:"required,max=120"`
	Responsible string        `json:"responsible" validate:"required,max=200"`
	Steps       Steps         `json:"steps" validate:"required,min=1,dive"`
	ReviewOn    *safety.Date  `json:"review_on"`
	Status      safety.Status `json:"status"`
}

// Summary aggregates the analyses matching a search.
type Summary struct {
	safety.StatusCounts
	AverageSteps float64 `json:"average_steps"`
}
