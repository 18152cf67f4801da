package math

import (
	"errors"
	"math"
)

var (
	// ErrNoValues is returned when a calculation received an empty slice
	ErrNoValues = errors.New("cannot calculate average of no values")
	// ErrZeroDeviation is returned when a ratio's deviation denominator is
	// zero, rendering the ratio undefined rather than zero
	ErrZeroDeviation = errors.New("standard deviation is zero, ratio undefined")
	// ErrNoNegativeResults is returned by the Sortino ratio when there are
	// no returns below the minimum acceptable return
	ErrNoNegativeResults = errors.New("no negative results, downside deviation undefined")
	// ErrCAGRNoIntervals is returned when no intervals have elapsed
	ErrCAGRNoIntervals = errors.New("cannot calculate CAGR over zero intervals")
	// ErrCAGRZeroOpenValue is returned when the opening value is not positive
	ErrCAGRZeroOpenValue = errors.New("cannot calculate CAGR with a non-positive open value")
)

// ArithmeticAverage is the basic form of calculating an average.
// Divide the sum of all values by the length of values
func ArithmeticAverage(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	var sumOfValues float64
	for x := range values {
		sumOfValues += values[x]
	}
	return sumOfValues / float64(len(values)), nil
}

// SampleStandardDeviation measures the dispersion of a dataset relative
// to its mean using the n-1 denominator
func SampleStandardDeviation(values []float64) (float64, error) {
	if len(values) <= 1 {
		return 0, nil
	}
	mean, err := ArithmeticAverage(values)
	if err != nil {
		return 0, err
	}
	var combined float64
	for i := range values {
		combined += math.Pow(values[i]-mean, 2)
	}
	return math.Sqrt(combined / (float64(len(values)) - 1)), nil
}

// PopulationStandardDeviation calculates standard deviation using
// population based calculation
func PopulationStandardDeviation(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	avg, err := ArithmeticAverage(values)
	if err != nil {
		return 0, err
	}
	diffs := make([]float64, len(values))
	for x := range values {
		diffs[x] = math.Pow(values[x]-avg, 2)
	}
	mean, err := ArithmeticAverage(diffs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mean), nil
}

// CalculateSharpeRatio returns the Sharpe ratio of per-period returns
// against a per-period risk free rate. ErrZeroDeviation is returned when
// the returns have no variance as the ratio is undefined, not zero
func CalculateSharpeRatio(movementPerPeriod []float64, riskFreeRate, average float64) (float64, error) {
	if len(movementPerPeriod) <= 1 {
		return 0, ErrNoValues
	}
	excessReturns := make([]float64, len(movementPerPeriod))
	for i := range movementPerPeriod {
		excessReturns[i] = movementPerPeriod[i] - riskFreeRate
	}
	standardDeviation, err := SampleStandardDeviation(excessReturns)
	if err != nil {
		return 0, err
	}
	if standardDeviation == 0 {
		return 0, ErrZeroDeviation
	}
	return (average - riskFreeRate) / standardDeviation, nil
}

// CalculateSortinoRatio returns the Sortino ratio of per-period returns,
// penalising only the downside deviation below the risk free rate.
// ErrNoNegativeResults is returned when no period fell below the risk
// free rate, leaving the denominator undefined
func CalculateSortinoRatio(movementPerPeriod []float64, riskFreeRate, average float64) (float64, error) {
	if len(movementPerPeriod) == 0 {
		return 0, ErrNoValues
	}
	var totalNegativeResultsSquared float64
	var negativeResults int
	for x := range movementPerPeriod {
		if movementPerPeriod[x]-riskFreeRate < 0 {
			totalNegativeResultsSquared += math.Pow(movementPerPeriod[x]-riskFreeRate, 2)
			negativeResults++
		}
	}
	if negativeResults == 0 {
		return 0, ErrNoNegativeResults
	}
	downsideDeviation := math.Sqrt(totalNegativeResultsSquared / float64(len(movementPerPeriod)))
	if downsideDeviation == 0 {
		return 0, ErrZeroDeviation
	}
	return (average - riskFreeRate) / downsideDeviation, nil
}

// CalculateCompoundAnnualGrowthRate calculates CAGR.
// Using years, intervals per year would be 1 and number of intervals would
// be the number of years.
// Using days, intervals per year would be 365 and number of intervals would
// be the number of days
func CalculateCompoundAnnualGrowthRate(openValue, closeValue, intervalsPerYear, numberOfIntervals float64) (float64, error) {
	if numberOfIntervals == 0 {
		return 0, ErrCAGRNoIntervals
	}
	if openValue <= 0 {
		return 0, ErrCAGRZeroOpenValue
	}
	k := math.Pow(closeValue/openValue, intervalsPerYear/numberOfIntervals) - 1
	return k * 100, nil
}
