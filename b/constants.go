package b

// Durations are plain seconds, matching block timestamps.
const (
	DAY   uint64 = 86400
	WEEK  uint64 = 7 * DAY
	MONTH uint64 = 2629800  // 365.25 days / 12
	YEAR  uint64 = 31557600 // 365.25 days
)

var (
	UNIT    = E18    // fixed-point scale of amounts, ratios and the reward index
	MAX_BPS = D10000 // basis points denominator
)
