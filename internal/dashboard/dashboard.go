// Package dashboard assembles the KPI cards shown on the EHS overview page
// by querying the summary of every record kind concurrently.
package dashboard

import (
	"github.com/JaimeStill/ssma/internal/accidents"
	"github.com/JaimeStill/ssma/internal/actions"
	"github.com/JaimeStill/ssma/internal/chemicals"
	"github.com/JaimeStill/ssma/internal/cipa"
	"github.com/JaimeStill/ssma/internal/diseases"
	"github.com/JaimeStill/ssma/internal/documents"
	"github.com/JaimeStill/ssma/internal/exams"
	"github.com/JaimeStill/ssma/internal/jsa"
	"github.com/JaimeStill/ssma/internal/lawsuits"
	"github.com/JaimeStill/ssma/internal/ppe"
	"github.com/JaimeStill/ssma/internal/safety"
	"github.com/JaimeStill/ssma/internal/trainings"
)

// Request selects the accident reporting period and the exposure figures
// used for rates and percentages. Record kinds other than accidents are
// summarized as of today.
type Request struct {
	From        *safety.Date
	To          *safety.Date
	HoursWorked float64
	Headcount   int
}

// Dashboard holds one card per record kind. A kind without a configured
// source is omitted.
type Dashboard struct {
	From        *safety.Date `json:"from"`
	To          *safety.Date `json:"to"`
	HoursWorked float64      `json:"hours_worked"`
	Headcount   int          `json:"headcount"`

	Trainings *trainings.Summary `json:"trainings,omitempty"`
	PPE       *ppe.Summary       `json:"ppe,omitempty"`
	Exams     *exams.Summary     `json:"exams,omitempty"`
	Chemicals *chemicals.Summary `json:"chemicals,omitempty"`
	JSA       *jsa.Summary       `json:"jsa,omitempty"`
	Lawsuits  *lawsuits.Summary  `json:"lawsuits,omitempty"`
	Diseases  *diseases.Summary  `json:"diseases,omitempty"`
	Documents *documents.Summary `json:"documents,omitempty"`
	CIPA      *cipa.Summary      `json:"cipa,omitempty"`
	Actions   *actions.Summary   `json:"actions,omitempty"`
	Accidents *accidents.Summary `json:"accidents,omitempty"`
	Rates     *accidents.Rates   `json:"rates,omitempty"`
}
