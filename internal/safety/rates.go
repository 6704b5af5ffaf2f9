package safety

// RateBase is the exposure scale used by both injury rates: one million hours worked.
const RateBase = 1_000_000

// FrequencyRate returns accidents with lost time per million hours worked.
// The result is nil when it cannot be computed (no hours worked, or a
// negative count); nil is distinct from a computed zero.
func FrequencyRate(accidentsWithLostTime int, hoursWorked float64) *float64 {
	return rate(accidentsWithLostTime, hoursWorked)
}

// SeverityRate returns days lost per million hours worked, with the same nil
// contract as FrequencyRate.
func SeverityRate(totalDaysLost int, hoursWorked float64) *float64 {
	return rate(totalDaysLost, hoursWorked)
}

func rate(count int, hoursWorked float64) *float64 {
	if hoursWorked <= 0 || count < 0 {
		return nil
	}
	r := float64(count) * RateBase / hoursWorked
	return &r
}
