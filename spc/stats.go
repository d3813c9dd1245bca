package spc

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"regviz/frame"
)

// Limits is a center line with fixed upper/lower control limits.
type Limits struct {
	Center float64
	Upper  float64
	Lower  float64
}

// CountLimits derives c chart limits from per-observation defect counts:
// CL = c̄, limits at c̄ ± 3√c̄, lower floored at zero.
func CountLimits(counts []float64) (Limits, error) {
	if len(counts) == 0 {
		return Limits{}, frame.NewInsufficientRowsError(1, 0)
	}
	cbar, _ := stats.Mean(counts)
	spread := 3 * math.Sqrt(cbar)
	return Limits{Center: cbar, Upper: cbar + spread, Lower: math.Max(0, cbar-spread)}, nil
}

// BinomialCountLimits derives np chart limits from per-subgroup defective
// counts: CL = mean count, limits at n(p̄ ± 3√(p̄(1−p̄)/n)), lower floored
// at zero.
func BinomialCountLimits(defectives []float64, subgroupSize int) (Limits, error) {
	if len(defectives) == 0 {
		return Limits{}, frame.NewInsufficientRowsError(1, 0)
	}
	n := float64(subgroupSize)
	npBar, _ := stats.Mean(defectives)
	pBar := npBar / n
	spread := 3 * math.Sqrt(pBar*(1-pBar)/n)
	return Limits{
		Center: npBar,
		Upper:  n * (pBar + spread),
		Lower:  math.Max(0, n*(pBar-spread)),
	}, nil
}

// ProportionLimits derives p chart limits from per-subgroup defective
// proportions: CL = p̄, limits at p̄ ± 3√(p̄(1−p̄)/n), lower floored at zero.
func ProportionLimits(proportions []float64, subgroupSize int) (Limits, error) {
	if len(proportions) == 0 {
		return Limits{}, frame.NewInsufficientRowsError(1, 0)
	}
	n := float64(subgroupSize)
	pBar, _ := stats.Mean(proportions)
	spread := 3 * math.Sqrt(pBar*(1-pBar)/n)
	return Limits{
		Center: pBar,
		Upper:  pBar + spread,
		Lower:  math.Max(0, pBar-spread),
	}, nil
}

// RateLimits derives u chart limits for variable sample sizes. The center is
// total defects over total opportunities; each observation gets its own
// limits at ū ± 3√(ū/nᵢ), lower floored at zero.
func RateLimits(defects, sizes []float64) (center float64, upper, lower []float64, err error) {
	if len(defects) == 0 {
		return 0, nil, nil, frame.NewInsufficientRowsError(1, 0)
	}
	if len(defects) != len(sizes) {
		return 0, nil, nil, fmt.Errorf("%w: %d defect rows, %d size rows", frame.ErrLengthMismatch, len(defects), len(sizes))
	}
	var defectSum, sizeSum float64
	for i, size := range sizes {
		if size <= 0 {
			return 0, nil, nil, fmt.Errorf("%w: row %d has size %v", ErrSampleSize, i, size)
		}
		defectSum += defects[i]
		sizeSum += size
	}
	center = defectSum / sizeSum
	upper = make([]float64, len(sizes))
	lower = make([]float64, len(sizes))
	for i, size := range sizes {
		spread := 3 * math.Sqrt(center/size)
		upper[i] = center + spread
		lower[i] = math.Max(0, center-spread)
	}
	return center, upper, lower, nil
}

// EWMASeries smooths x with constant lambda, starting from the process mean:
// ewma[0] = x̄, ewma[i] = λx[i] + (1−λ)ewma[i−1].
func EWMASeries(x []float64, lambda float64) ([]float64, error) {
	if lambda <= 0 || lambda > 1 {
		return nil, fmt.Errorf("%w: %v", ErrSmoothing, lambda)
	}
	if len(x) == 0 {
		return nil, frame.NewInsufficientRowsError(1, 0)
	}
	mu, _ := stats.Mean(x)
	ewma := make([]float64, len(x))
	ewma[0] = mu
	for i := 1; i < len(x); i++ {
		ewma[i] = lambda*x[i] + (1-lambda)*ewma[i-1]
	}
	return ewma, nil
}

// EWMABands computes the time-varying EWMA control limits
// μ ± L·σ̂·√(λ/(2−λ))·√(1−(1−λ)^(2(i+1))) with the sample standard
// deviation; the band widens toward its asymptote.
func EWMABands(x []float64, lambda, width float64) (center float64, upper, lower []float64, err error) {
	if lambda <= 0 || lambda > 1 {
		return 0, nil, nil, fmt.Errorf("%w: %v", ErrSmoothing, lambda)
	}
	if width <= 0 {
		return 0, nil, nil, fmt.Errorf("%w: %v", ErrLimitWidth, width)
	}
	if len(x) < 2 {
		return 0, nil, nil, frame.NewInsufficientRowsError(2, len(x))
	}
	mu, _ := stats.Mean(x)
	sigma, _ := stats.StandardDeviationSample(x)
	asymptote := math.Sqrt(lambda / (2 - lambda))
	upper = make([]float64, len(x))
	lower = make([]float64, len(x))
	for i := range x {
		dev := width * sigma * asymptote * math.Sqrt(1-math.Pow(1-lambda, 2*float64(i+1)))
		upper[i] = mu + dev
		lower[i] = mu - dev
	}
	return mu, upper, lower, nil
}

// MovingRanges returns |x[i+1] − x[i]|, one element shorter than x.
func MovingRanges(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	mrs := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		mrs[i-1] = math.Abs(x[i] - x[i-1])
	}
	return mrs
}

// IMRLimits derives individuals and moving range limits: X̄ ± E2·M̄R for the
// individuals panel, D4·M̄R and D3·M̄R for the range panel.
func IMRLimits(x []float64) (individuals, movingRange Limits, mrs []float64, err error) {
	if len(x) < 2 {
		return Limits{}, Limits{}, nil, frame.NewInsufficientRowsError(2, len(x))
	}
	mrs = MovingRanges(x)
	xBar, _ := stats.Mean(x)
	mrBar, _ := stats.Mean(mrs)
	individuals = Limits{Center: xBar, Upper: xBar + e2*mrBar, Lower: xBar - e2*mrBar}
	movingRange = Limits{Center: mrBar, Upper: d4[2] * mrBar, Lower: d3[2] * mrBar}
	return individuals, movingRange, mrs, nil
}

// CompleteSubgroups partitions x into len(x)/size complete subgroups,
// dropping a trailing remainder. Zero complete subgroups is an error.
func CompleteSubgroups(x []float64, size int) ([][]float64, error) {
	if size < 1 {
		return nil, NewSubgroupSizeError(size)
	}
	k := len(x) / size
	if k == 0 {
		return nil, fmt.Errorf("%w: size %d, %d data points", ErrSubgroupData, size, len(x))
	}
	groups := make([][]float64, k)
	for i := 0; i < k; i++ {
		groups[i] = x[i*size : (i+1)*size]
	}
	return groups, nil
}

// XBarRStats reduces complete subgroups to their means and ranges and derives
// X̿ ± A2·R̄ and D4·R̄ / D3·R̄ limits. Subgroup sizes outside 2-10 are
// rejected.
func XBarRStats(groups [][]float64) (xbars, ranges []float64, xLimits, rLimits Limits, err error) {
	size := len(groups[0])
	aConst, ok := a2[size]
	if !ok {
		return nil, nil, Limits{}, Limits{}, NewSubgroupSizeError(size)
	}
	xbars = make([]float64, len(groups))
	ranges = make([]float64, len(groups))
	for i, g := range groups {
		xbars[i], _ = stats.Mean(g)
		hi, _ := stats.Max(g)
		lo, _ := stats.Min(g)
		ranges[i] = hi - lo
	}
	grand, _ := stats.Mean(xbars)
	rBar, _ := stats.Mean(ranges)
	xLimits = Limits{Center: grand, Upper: grand + aConst*rBar, Lower: grand - aConst*rBar}
	rLimits = Limits{Center: rBar, Upper: d4[size] * rBar, Lower: d3[size] * rBar}
	return xbars, ranges, xLimits, rLimits, nil
}

// XBarSStats reduces complete subgroups to their means and sample standard
// deviations and derives X̿ ± A3·S̄ and B4·S̄ / B3·S̄ limits. Subgroup sizes
// outside 2-10 are rejected.
func XBarSStats(groups [][]float64) (xbars, sdevs []float64, xLimits, sLimits Limits, err error) {
	size := len(groups[0])
	aConst, ok := a3[size]
	if !ok {
		return nil, nil, Limits{}, Limits{}, NewSubgroupSizeError(size)
	}
	xbars = make([]float64, len(groups))
	sdevs = make([]float64, len(groups))
	for i, g := range groups {
		xbars[i], _ = stats.Mean(g)
		sdevs[i], _ = stats.StandardDeviationSample(g)
	}
	grand, _ := stats.Mean(xbars)
	sBar, _ := stats.Mean(sdevs)
	xLimits = Limits{Center: grand, Upper: grand + aConst*sBar, Lower: grand - aConst*sBar}
	sLimits = Limits{Center: sBar, Upper: b4[size] * sBar, Lower: b3[size] * sBar}
	return xbars, sdevs, xLimits, sLimits, nil
}

// HotellingT2 computes the T² statistic per row against the sample mean and
// covariance, plus the F-based upper control limit
// p(n−1)(n+1)/(n(n−p)) · F⁻¹(1−α; p, n−p). A singular covariance matrix
// propagates the inversion error.
func HotellingT2(rows [][]float64, alpha float64) (t2 []float64, ucl float64, err error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, 0, fmt.Errorf("%w: %v", ErrAlpha, alpha)
	}
	n := len(rows)
	if n < 2 {
		return nil, 0, frame.NewInsufficientRowsError(2, n)
	}
	p := len(rows[0])
	if n <= p {
		return nil, 0, frame.NewInsufficientRowsError(p+1, n)
	}

	flat := make([]float64, 0, n*p)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	observations := mat.NewDense(n, p, flat)

	means := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, observations)
		means[j], _ = stats.Mean(col)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, observations, nil)
	var covInv mat.Dense
	if err := covInv.Inverse(&cov); err != nil {
		return nil, 0, fmt.Errorf("invert covariance matrix: %w", err)
	}

	t2 = make([]float64, n)
	diff := make([]float64, p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			diff[j] = rows[i][j] - means[j]
		}
		vec := mat.NewVecDense(p, diff)
		t2[i] = mat.Inner(vec, &covInv, vec)
	}

	fDist := distuv.F{D1: float64(p), D2: float64(n - p)}
	scale := float64(p*(n-1)*(n+1)) / float64(n*(n-p))
	ucl = scale * fDist.Quantile(1-alpha)
	return t2, ucl, nil
}
