package accidents

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/JaimeStill/ssma/internal/safety"
)

// ParsePeriod reads the optional from and to dates of a reporting period.
func ParsePeriod(values url.Values) (from, to *safety.Date, err error) {
	parse := func(key string) (*safety.Date, error) {
		raw := values.Get(key)
		if raw == "" {
			return nil, nil
		}
		d, err := safety.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, key)
		}
		return &d, nil
	}

	if from, err = parse("from"); err != nil {
		return nil, nil, err
	}
	if to, err = parse("to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrInvalidPeriod
	}
	return from, to, nil
}

// ParseHours reads hours worked. A missing value is 0, which leaves the
// rates uncomputed.
func ParseHours(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidHours
	}
	return v, nil
}

// ParseHeadcount reads a workforce size. A missing value is 0.
func ParseHeadcount(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, ErrInvalidCount
	}
	return v, nil
}
