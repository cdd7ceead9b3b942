package utils

import "time"

// MSK is the reporting timezone for the analytics dashboard. Rows are
// stored in UTC; only the rollup bucket boundaries use Moscow time.
var MSK = time.FixedZone("MSK", 3*60*60)

func MSKNow() time.Time {
	return time.Now().In(MSK)
}

func StartOfDayMSK(t time.Time) time.Time {
	t = t.In(MSK)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, MSK)
}
