package dashboard

import (
	"context"

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

// Summarizer is the summary operation every record System exposes.
type Summarizer[S, F any] interface {
	Summary(ctx context.Context, search string, filters F) (*S, error)
}

// AccidentSource is the part of accidents.System the dashboard reads.
type AccidentSource interface {
	Summary(ctx context.Context, search string, filters accidents.Filters, headcount int) (*accidents.Summary, error)
	Rates(ctx context.Context, from, to *safety.Date, hoursWorked float64) (*accidents.Rates, error)
}

// Sources lists the systems queried for each card. Nil sources are skipped.
type Sources struct {
	Trainings Summarizer[trainings.Summary, trainings.Filters]
	PPE       Summarizer[ppe.Summary, ppe.Filters]
	Exams     Summarizer[exams.Summary, exams.Filters]
	Chemicals Summarizer[chemicals.Summary, chemicals.Filters]
	JSA       Summarizer[jsa.Summary, jsa.Filters]
	Lawsuits  Summarizer[lawsuits.Summary, lawsuits.Filters]
	Diseases  Summarizer[diseases.Summary, diseases.Filters]
	Documents Summarizer[documents.Summary, documents.Filters]
	CIPA      Summarizer[cipa.Summary, cipa.Filters]
	Actions   Summarizer[actions.Summary, actions.Filters]
	Accidents AccidentSource
}
