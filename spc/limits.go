package spc

// SpecLimits carries the optional lower/upper specification bounds the
// attribute charts classify observations against. At least one bound must be
// set.
type SpecLimits struct {
	Lower *float64
	Upper *float64
}

// Bound builds a *float64 in place for SpecLimits literals.
func Bound(v float64) *float64 { return &v }

// Validate fails when neither bound is set.
func (s SpecLimits) Validate() error {
	if s.Lower == nil && s.Upper == nil {
		return ErrNoSpecLimit
	}
	return nil
}

// DefectCount counts breaches per set bound, so one observation can
// contribute two defects. NaN breaches nothing. The c chart counts defects
// this way.
func (s SpecLimits) DefectCount(x float64) float64 {
	var n float64
	if s.Lower != nil && x < *s.Lower {
		n++
	}
	if s.Upper != nil && x > *s.Upper {
		n++
	}
	return n
}

// Defective flags an observation breaching either set bound. NaN breaches
// nothing. The np, p and u charts classify observations as defective or not.
func (s SpecLimits) Defective(x float64) bool {
	if s.Lower != nil && x < *s.Lower {
		return true
	}
	return s.Upper != nil && x > *s.Upper
}
