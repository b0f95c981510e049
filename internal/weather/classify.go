package weather

// Classify maps visibility (statute miles) and cloud coverage (percent)
// to a flight category. This is a simplified proxy for real aviation
// flight-category rules: ceiling height is not modeled, coverage
// percent substitutes for it. Not aviation-certified logic.
//
// Checked in order, first match wins:
//  1. unknown visibility -> VFR (optimistic default)
//  2. visibility < 3 sm or coverage >= 85% -> IFR
//  3. visibility < 5 sm or coverage >= 60% -> MVFR
//  4. otherwise VFR
//
// Boundary values resolve to the lower category: exactly 3 sm is MVFR,
// exactly 60% coverage is MVFR.
func Classify(visibilityMiles, cloudCoverPct *float64) Category {
	if visibilityMiles == nil {
		return CategoryVFR
	}

	coverage := 0.0
	if cloudCoverPct != nil {
		coverage = *cloudCoverPct
	}

	vis := *visibilityMiles
	switch {
	case vis < 3 || coverage >= 85:
		return CategoryIFR
	case vis < 5 || coverage >= 60:
		return CategoryMVFR
	default:
		return CategoryVFR
	}
}
