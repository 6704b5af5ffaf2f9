package api

import (
	"github.com/JaimeStill/ssma/internal/accidents"
	"github.com/JaimeStill/ssma/internal/actions"
	"github.com/JaimeStill/ssma/internal/attachments"
	"github.com/JaimeStill/ssma/internal/chemicals"
	"github.com/JaimeStill/ssma/internal/cipa"
	"github.com/JaimeStill/ssma/internal/dashboard"
	"github.com/JaimeStill/ssma/internal/diseases"
	"github.com/JaimeStill/ssma/internal/documents"
	"github.com/JaimeStill/ssma/internal/exams"
	"github.com/JaimeStill/ssma/internal/jsa"
	"github.com/JaimeStill/ssma/internal/lawsuits"
	"github.com/JaimeStill/ssma/internal/ppe"
	"github.com/JaimeStill/ssma/internal/refresh"
	"github.com/JaimeStill/ssma/internal/trainings"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Trainings trainings.System
	PPE       ppe.System
	Exams     exams.System
	Chemicals chemicals.System
	JSA       jsa.System
	Lawsuits  lawsuits.System
	Diseases  diseases.System
	Documents documents.System
	CIPA      cipa.System
	Actions   actions.System
	Accidents accidents.System
	Dashboard dashboard.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()
	store := func(kind string) *attachments.Store {
		return attachments.NewStore(runtime.Storage, kind, runtime.Logger)
	}

	d := &Domain{
		Trainings: trainings.New(
			db, store("trainings"), runtime.Classifier, runtime.Clock,
			runtime.Search("trainings"), runtime.Logger, runtime.Pagination,
		),
		PPE: ppe.New(
			db, runtime.Classifier, runtime.Clock,
			runtime.Search("ppe"), runtime.Logger, runtime.Pagination,
		),
		Exams: exams.New(
			db, store("exams"), runtime.Classifier, runtime.Clock,
			runtime.Search("exams"), runtime.Logger, runtime.Pagination,
		),
		Chemicals: chemicals.New(
			db, runtime.Classifier, runtime.Clock,
			runtime.Search("chemicals"), runtime.Logger, runtime.Pagination,
		),
		JSA: jsa.New(
			db, runtime.Classifier, runtime.Clock,
			runtime.Search("jsa"), runtime.Logger, runtime.Pagination,
		),
		Lawsuits: lawsuits.New(
			db, runtime.Classifier.Window(), runtime.Clock,
			runtime.Search("lawsuits"), runtime.Logger, runtime.Pagination,
		),
		Diseases: diseases.New(
			db, runtime.Search("diseases"), runtime.Logger, runtime.Pagination,
		),
		Documents: documents.New(
			db, store("documents"), runtime.Classifier, runtime.Clock,
			runtime.Search("documents"), runtime.Logger, runtime.Pagination,
		),
		CIPA: cipa.New(
			db, runtime.Clock, runtime.Search("cipa"), runtime.Logger, runtime.Pagination,
		),
		Actions: actions.New(
			db, runtime.Clock, runtime.Search("actions"), runtime.Logger, runtime.Pagination,
		),
		Accidents: accidents.New(
			db, runtime.Search("accidents"), runtime.Logger, runtime.Pagination,
		),
	}

	d.Dashboard = dashboard.New(dashboard.Sources{
		Trainings: d.Trainings,
		PPE:       d.PPE,
		Exams:     d.Exams,
		Chemicals: d.Chemicals,
		JSA:       d.JSA,
		Lawsuits:  d.Lawsuits,
		Diseases:  d.Diseases,
		Documents: d.Documents,
		CIPA:      d.CIPA,
		Actions:   d.Actions,
		Accidents: d.Accidents,
	}, runtime.Logger)

	return d
}

// Refreshers returns the kinds whose stored statuses depend on the date.
func (d *Domain) Refreshers() map[string]refresh.Refresher {
	return map[string]refresh.Refresher{
		"trainings": d.Trainings,
		"ppe":       d.PPE,
		"exams":     d.Exams,
		"chemicals": d.Chemicals,
		"jsa":       d.JSA,
		"documents": d.Documents,
		"cipa":      d.CIPA,
		"actions":   d.Actions,
	}
}
