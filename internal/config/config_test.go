package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"REGVIZ_OUT_DIR",
	"REGVIZ_DATA_FILE",
	"REGVIZ_FEATURES",
	"REGVIZ_TARGET",
	"REGVIZ_ID_COLUMN",
	"REGVIZ_CATEGORY",
	"REGVIZ_SIZE_COLUMN",
	"REGVIZ_HEATS",
	"REGVIZ_SEED",
	"REGVIZ_NOISE_SIGMA",
	"REGVIZ_LGBM_MODEL",
	"REGVIZ_SPEC_LOWER",
	"REGVIZ_SPEC_UPPER",
}

// clearEnv blanks every renderer variable so ambient shell state cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "charts", cfg.Output.Dir)
	assert.Empty(t, cfg.Dataset.File)
	assert.Empty(t, cfg.Dataset.Features)
	assert.Equal(t, 120, cfg.Synthetic.Heats)
	assert.Equal(t, int64(42), cfg.Synthetic.Seed)
	assert.Equal(t, 4.0, cfg.Synthetic.NoiseSigma)
	assert.Empty(t, cfg.Model.LightGBM)
	assert.Nil(t, cfg.Specs.Lower)
	assert.Nil(t, cfg.Specs.Upper)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGVIZ_OUT_DIR", "/tmp/pages")
	t.Setenv("REGVIZ_DATA_FILE", "mill.xlsx")
	t.Setenv("REGVIZ_FEATURES", " furnace_temp , carbon,,silicon ")
	t.Setenv("REGVIZ_TARGET", "yield_strength")
	t.Setenv("REGVIZ_ID_COLUMN", "heat_id")
	t.Setenv("REGVIZ_CATEGORY", "shift")
	t.Setenv("REGVIZ_SIZE_COLUMN", "sample_size")
	t.Setenv("REGVIZ_HEATS", "48")
	t.Setenv("REGVIZ_SEED", "7")
	t.Setenv("REGVIZ_NOISE_SIGMA", "2.5")
	t.Setenv("REGVIZ_LGBM_MODEL", "model.txt")
	t.Setenv("REGVIZ_SPEC_LOWER", "455")
	t.Setenv("REGVIZ_SPEC_UPPER", "520")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pages", cfg.Output.Dir)
	assert.Equal(t, "mill.xlsx", cfg.Dataset.File)
	assert.Equal(t, []string{"furnace_temp", "carbon", "silicon"}, cfg.Dataset.Features)
	assert.Equal(t, "yield_strength", cfg.Dataset.Target)
	assert.Equal(t, "heat_id", cfg.Dataset.IDColumn)
	assert.Equal(t, "shift", cfg.Dataset.Category)
	assert.Equal(t, "sample_size", cfg.Dataset.SizeColumn)
	assert.Equal(t, 48, cfg.Synthetic.Heats)
	assert.Equal(t, int64(7), cfg.Synthetic.Seed)
	assert.Equal(t, 2.5, cfg.Synthetic.NoiseSigma)
	assert.Equal(t, "model.txt", cfg.Model.LightGBM)
	require.NotNil(t, cfg.Specs.Lower)
	require.NotNil(t, cfg.Specs.Upper)
	assert.Equal(t, 455.0, *cfg.Specs.Lower)
	assert.Equal(t, 520.0, *cfg.Specs.Upper)
}

func TestLoad_UnparsableNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGVIZ_HEATS", "many")
	t.Setenv("REGVIZ_SEED", "lucky")
	t.Setenv("REGVIZ_NOISE_SIGMA", "loud")
	t.Setenv("REGVIZ_SPEC_LOWER", "low")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Synthetic.Heats)
	assert.Equal(t, int64(42), cfg.Synthetic.Seed)
	assert.Equal(t, 4.0, cfg.Synthetic.NoiseSigma)
	assert.Nil(t, cfg.Specs.Lower)
}

func TestLoad_FileDatasetRequiresSchema(t *testing.T) {
	cases := map[string]map[string]string{
		"missing features": {
			"REGVIZ_TARGET":    "yield_strength",
			"REGVIZ_ID_COLUMN": "heat_id",
		},
		"missing target": {
			"REGVIZ_FEATURES":  "furnace_temp,carbon",
			"REGVIZ_ID_COLUMN": "heat_id",
		},
		"missing id column": {
			"REGVIZ_FEATURES": "furnace_temp,carbon",
			"REGVIZ_TARGET":   "yield_strength",
		},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("REGVIZ_DATA_FILE", "mill.csv")
			for key, value := range env {
				t.Setenv(key, value)
			}

			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Run("too few heats", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REGVIZ_HEATS", "1")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("negative noise", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REGVIZ_NOISE_SIGMA", "-0.5")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("inverted spec limits", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REGVIZ_SPEC_LOWER", "520")
		t.Setenv("REGVIZ_SPEC_UPPER", "455")

		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
