package usecase

import "fmt"

// ChainDenomForHumanDenomNotFoundError represents error type for when a chain denom
// for a human denom is not found.
type ChainDenomForHumanDenomNotFoundError struct {
	HumanDenom string
}

// Error implements the error interface.
func (e ChainDenomForHumanDenomNotFoundError) Error() string {
	return fmt.Sprintf("chain denom for human denom (%s) is not found", e.HumanDenom)
}

// MetadataForChainDenomNotFoundError represents error type for when metadata for a chain denom
// is not found.
type MetadataForChainDenomNotFoundError struct {
	ChainDenom string
}

// Error implements the error interface.
func (e MetadataForChainDenomNotFoundError) Error() string {
	return fmt.Sprintf("metadata for denom (%s) is not found", e.ChainDenom)
}

// ScalingFactorForPrecisionNotFoundError represents error type for when a scaling factor
// for denom precision is not found.
type ScalingFactorForPrecisionNotFoundError struct {
	Precision int
	Denom     string
}

// Error implements the error interface.
func (e ScalingFactorForPrecisionNotFoundError) Error() string {
	return fmt.Sprintf("scaling factor for precision (%d) and denom (%s) not found", e.Precision, e.Denom)
}

// PricingSourceNotRegisteredError represents error type for when the price
// feed source has not been registered with the tokens use case.
type PricingSourceNotRegisteredError struct{}

// Error implements the error interface.
func (e PricingSourceNotRegisteredError) Error() string {
	return "pricing source is not registered in the tokens use case"
}
