package calculation

import "time"

// seedFunc returns a pseudo-random seed (override for deterministic Monte Carlo tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// nowFunc stamps generated reports (override for deterministic output tests).
var nowFunc = time.Now

// SetNowFunc overrides the report clock (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }
