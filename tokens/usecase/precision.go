package usecase

import "github.com/osmosis-labs/osmosis/osmomath"

var (
	tenDec = osmomath.NewDec(10)
	// No mutex since we only instantiate this once, and its static content
	precisionScalingFactors []osmomath.Dec
)

func init() {
	precisionScalingFactors = buildPrecisionScalingFactors()
}

// Registry precisions are capped at 18 fractional digits.
const maxDecPrecision = 19

func buildPrecisionScalingFactors() []osmomath.Dec {
	precisionScalingFactors := make([]osmomath.Dec, maxDecPrecision)
	for i := 0; i < maxDecPrecision; i++ {
		precisionScalingFactors[i] = tenDec.Power(uint64(i))
	}
	return precisionScalingFactors
}

func getPrecisionScalingFactorMut(precision int) (osmomath.Dec, bool) {
	if precision < 0 || precision >= len(precisionScalingFactors) {
		return osmomath.Dec{}, false
	}
	result := precisionScalingFactors[precision]
	return result, true
}
