// Package testkit generates seeded synthetic process datasets so tests and
// the demo command can exercise every chart without shipping plant data.
package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"regviz/frame"
)

// ProcessConfig configures the synthetic rolling-line dataset.
type ProcessConfig struct {
	Heats      int     `json:"heats"`
	Seed       int64   `json:"seed"`
	NoiseSigma float64 `json:"noise_sigma"`
}

// DefaultProcessConfig returns sensible defaults for the generator.
func DefaultProcessConfig() ProcessConfig {
	return ProcessConfig{
		Heats:      120,
		Seed:       42,
		NoiseSigma: 4.0,
	}
}

// Ground-truth coefficients of the synthetic yield-strength response.
// Tests lean on these being linear so a fitted model can recover them.
const (
	BaseStrength = 420.0
	TempCoeff    = 0.18
	CarbonCoeff  = 380.0
	SiliconCoeff = 90.0
	SpeedCoeff   = -12.0
)

// ProcessGenerator synthesizes heats of a rolling line: furnace settings and
// chemistry per heat, an inspection sample size, a shift tag, and a
// yield-strength response with known coefficients plus Gaussian noise.
type ProcessGenerator struct {
	config ProcessConfig
	rng    *rand.Rand
}

// NewProcessGenerator creates a generator with its own seeded source.
func NewProcessGenerator(config ProcessConfig) *ProcessGenerator {
	return &ProcessGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds the dataset frame. Columns: heat_id, shift, furnace_temp,
// carbon, silicon, roll_speed, sample_size, yield_strength.
func (g *ProcessGenerator) Generate() (*frame.Frame, error) {
	n := g.config.Heats
	if n < 1 {
		return nil, frame.NewInsufficientRowsError(1, n)
	}

	heatIDs := make([]string, n)
	shifts := make([]string, n)
	temps := make([]float64, n)
	carbons := make([]float64, n)
	silicons := make([]float64, n)
	speeds := make([]float64, n)
	sampleSizes := make([]float64, n)
	strengths := make([]float64, n)

	for i := 0; i < n; i++ {
		heatIDs[i] = fmt.Sprintf("HEAT-%04d", i+1)
		if g.rng.Float64() < 0.5 {
			shifts[i] = "day"
		} else {
			shifts[i] = "night"
		}
		temps[i] = 1520 + 18*g.rng.NormFloat64()
		carbons[i] = math.Abs(0.18 + 0.03*g.rng.NormFloat64())
		silicons[i] = math.Abs(0.35 + 0.08*g.rng.NormFloat64())
		speeds[i] = 3.2 + 0.4*g.rng.NormFloat64()
		sampleSizes[i] = float64(5 + g.rng.Intn(8))
		strengths[i] = BaseStrength +
			TempCoeff*(temps[i]-1520) +
			CarbonCoeff*carbons[i] +
			SiliconCoeff*silicons[i] +
			SpeedCoeff*speeds[i] +
			g.config.NoiseSigma*g.rng.NormFloat64()
	}

	return frame.New(
		frame.StringColumn("heat_id", heatIDs),
		frame.StringColumn("shift", shifts),
		frame.NumericColumn("furnace_temp", temps),
		frame.NumericColumn("carbon", carbons),
		frame.NumericColumn("silicon", silicons),
		frame.NumericColumn("roll_speed", speeds),
		frame.NumericColumn("sample_size", sampleSizes),
		frame.NumericColumn("yield_strength", strengths),
	)
}

// Features lists the generator's model feature columns in order.
func Features() []string {
	return []string{"furnace_temp", "carbon", "silicon", "roll_speed"}
}

// Target names the response column.
func Target() string { return "yield_strength" }
