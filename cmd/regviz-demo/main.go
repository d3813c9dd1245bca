// Command regviz-demo renders the complete chart catalogue against a
// demo dataset and regressor, one standalone HTML page per chart family.
//
// With no configuration it seeds the synthetic rolling-line dataset,
// fits an ordinary least squares model to it, and writes the pages to
// ./charts. Environment variables (optionally via a .env file) swap in
// a tabular data file or a trained LightGBM model; see internal/config.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/joho/godotenv"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"regviz/adapters/excel"
	"regviz/adapters/gbdt"
	"regviz/adapters/linear"
	"regviz/adapters/shapley"
	"regviz/diag"
	"regviz/eda"
	"regviz/frame"
	"regviz/internal"
	"regviz/internal/config"
	"regviz/internal/testkit"
	"regviz/ports"
	"regviz/shap"
	"regviz/spc"
	"regviz/xai"
)

const (
	xbarSubgroup      = 5
	attributeSubgroup = 10
	ewmaLambda        = 0.2
	ewmaWidth         = 3
	t2Alpha           = 0.0027
)

var logger = internal.NewDefaultLogger("demo")

// dataset bundles the demo frame with the column roles the charts need.
type dataset struct {
	df         *frame.Frame
	features   []string
	target     string
	idColumn   string
	category   string
	sizeColumn string
	domains    map[string]string
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ds, err := loadDataset(cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	model, explainer, err := buildModel(cfg, ds)
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}

	specs, err := specLimits(cfg, ds)
	if err != nil {
		log.Fatalf("Failed to derive spec limits: %v", err)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	var group errgroup.Group
	group.Go(func() error { return renderEDA(cfg.Output.Dir, ds) })
	group.Go(func() error { return renderSPC(cfg.Output.Dir, ds, specs) })
	group.Go(func() error { return renderDiagnostics(cfg.Output.Dir, model, ds) })
	group.Go(func() error { return renderAttributions(cfg.Output.Dir, explainer, model, ds) })
	group.Go(func() error { return renderModelViews(cfg.Output.Dir, model, ds) })
	if err := group.Wait(); err != nil {
		log.Fatalf("Rendering failed: %v", err)
	}

	logger.Info("chart pages written to %s", cfg.Output.Dir)
}

// loadDataset reads the configured data file, or falls back to the
// seeded synthetic rolling-line dataset when none is configured.
func loadDataset(cfg *config.Config) (*dataset, error) {
	if cfg.Dataset.File != "" {
		logger.Info("using tabular data source: %s", cfg.Dataset.File)
		df, err := excel.ReadFile(cfg.Dataset.File)
		if err != nil {
			return nil, err
		}
		cols := append(append([]string{}, cfg.Dataset.Features...), cfg.Dataset.Target)
		clean, err := df.DropNaN(cols...)
		if err != nil {
			return nil, err
		}
		if dropped := df.Rows() - clean.Rows(); dropped > 0 {
			logger.Warn("dropped %d rows with missing feature or target values", dropped)
		}
		return &dataset{
			df:         clean,
			features:   cfg.Dataset.Features,
			target:     cfg.Dataset.Target,
			idColumn:   cfg.Dataset.IDColumn,
			category:   cfg.Dataset.Category,
			sizeColumn: cfg.Dataset.SizeColumn,
		}, nil
	}

	logger.Info("no data file configured, generating synthetic rolling-line data")
	generator := testkit.NewProcessGenerator(testkit.ProcessConfig{
		Heats:      cfg.Synthetic.Heats,
		Seed:       cfg.Synthetic.Seed,
		NoiseSigma: cfg.Synthetic.NoiseSigma,
	})
	df, err := generator.Generate()
	if err != nil {
		return nil, err
	}
	return &dataset{
		df:         df,
		features:   testkit.Features(),
		target:     testkit.Target(),
		idColumn:   "heat_id",
		category:   "shift",
		sizeColumn: "sample_size",
		domains: map[string]string{
			"furnace_temp": "Thermal",
			"carbon":       "Chemistry",
			"silicon":      "Chemistry",
			"roll_speed":   "Mechanical",
		},
	}, nil
}

// buildModel loads the configured LightGBM model, or fits an OLS model
// on the dataset. The explainer is exact for OLS and sampling-based
// otherwise.
func buildModel(cfg *config.Config, ds *dataset) (ports.Regressor, ports.Explainer, error) {
	if cfg.Model.LightGBM != "" {
		model, err := gbdt.Load(cfg.Model.LightGBM)
		if err != nil {
			return nil, nil, err
		}
		return model, shapley.New(shapley.DefaultSamples, cfg.Synthetic.Seed), nil
	}

	model, err := linear.Fit(ds.df, ds.features, ds.target)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("fit OLS model over %d features (intercept %.2f)", len(ds.features), model.Intercept())
	return model, linear.Explainer{}, nil
}

// specLimits returns the configured engineering limits for the
// attribute charts, deriving the target's 5th and 95th percentiles
// when none are set so there is always a defect rule to count against.
func specLimits(cfg *config.Config, ds *dataset) (spc.SpecLimits, error) {
	specs := spc.SpecLimits{Lower: cfg.Specs.Lower, Upper: cfg.Specs.Upper}
	if specs.Lower != nil || specs.Upper != nil {
		return specs, nil
	}

	clean, err := ds.df.DropNaN(ds.target)
	if err != nil {
		return specs, err
	}
	vals, err := clean.Numeric(ds.target)
	if err != nil {
		return specs, err
	}
	lower, err := stats.Percentile(vals, 5)
	if err != nil {
		return specs, fmt.Errorf("failed to derive spec limits: %w", err)
	}
	upper, err := stats.Percentile(vals, 95)
	if err != nil {
		return specs, fmt.Errorf("failed to derive spec limits: %w", err)
	}
	logger.Info("derived spec limits from target percentiles: [%.2f, %.2f]", lower, upper)
	return spc.SpecLimits{Lower: spc.Bound(lower), Upper: spc.Bound(upper)}, nil
}

func renderEDA(dir string, ds *dataset) error {
	ecdf, err := eda.ECDFChart(ds.df, ds.target)
	if err != nil {
		return err
	}
	box, err := eda.BoxplotChart(ds.df, ds.target, ds.category)
	if err != nil {
		return err
	}
	hist, err := eda.HistogramChart(ds.df, ds.target, ds.category, 0)
	if err != nil {
		return err
	}
	columns := append(append([]string{}, ds.features...), ds.target)
	heat, err := eda.HeatmapChart(ds.df, columns, eda.MethodPearson)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "Exploratory Charts"
	page.AddCharts(ecdf, box, hist, heat)
	return writePage(dir, "eda.html", page)
}

func renderSPC(dir string, ds *dataset, specs spc.SpecLimits) error {
	run, err := spc.RunChart(ds.df, ds.target, ds.idColumn, spc.CenterMean)
	if err != nil {
		return err
	}
	ewma, err := spc.EWMAChart(ds.df, ds.target, ewmaLambda, ewmaWidth)
	if err != nil {
		return err
	}
	p, err := spc.PChart(ds.df, ds.target, attributeSubgroup, specs)
	if err != nil {
		return err
	}
	np, err := spc.NPChart(ds.df, ds.target, attributeSubgroup, specs)
	if err != nil {
		return err
	}
	c, err := spc.CChart(ds.df, ds.target, specs)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "Control Charts"
	page.AddCharts(run, ewma, p, np, c)

	if ds.sizeColumn != "" {
		u, err := spc.UChart(ds.df, ds.target, ds.sizeColumn, ds.idColumn, specs)
		if err != nil {
			return err
		}
		page.AddCharts(u)
	} else {
		logger.Warn("no sample-size column configured, skipping u-chart")
	}

	if len(ds.features) >= 2 {
		t2, err := spc.T2Chart(ds.df, ds.features, ds.idColumn, t2Alpha)
		if err != nil {
			return err
		}
		page.AddCharts(t2)
	} else {
		logger.Warn("fewer than two features, skipping T² chart")
	}

	if err := writePage(dir, "spc.html", page); err != nil {
		return err
	}

	imr, err := spc.IMRChart(ds.df, ds.target, ds.idColumn)
	if err != nil {
		return err
	}
	if err := writePage(dir, "imr.html", imr); err != nil {
		return err
	}

	xbarR, err := spc.XBarRChart(ds.df, ds.target, ds.idColumn, xbarSubgroup)
	if err != nil {
		return err
	}
	if err := writePage(dir, "xbar_r.html", xbarR); err != nil {
		return err
	}

	xbarS, err := spc.XBarSChart(ds.df, ds.target, ds.idColumn, xbarSubgroup)
	if err != nil {
		return err
	}
	return writePage(dir, "xbar_s.html", xbarS)
}

func renderDiagnostics(dir string, model ports.Regressor, ds *dataset) error {
	residuals, err := diag.ResidualsVsPredicted(model, ds.df, ds.features, ds.target, ds.idColumn)
	if err != nil {
		return err
	}
	scatter, err := diag.ActualVsPredicted(model, ds.df, ds.features, ds.target, ds.idColumn)
	if err != nil {
		return err
	}
	qq, err := diag.QQResiduals(model, ds.df, ds.features, ds.target)
	if err != nil {
		return err
	}
	cumulative, err := diag.CumulativeErrorChart(model, ds.df, ds.features, ds.target)
	if err != nil {
		return err
	}
	series, err := diag.PredictionTimeSeries(model, ds.df, ds.features, ds.target, ds.idColumn)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "Model Diagnostics"
	page.AddCharts(residuals, scatter, qq, cumulative, series)
	return writePage(dir, "diagnostics.html", page)
}

func renderAttributions(dir string, explainer ports.Explainer, model ports.Regressor, ds *dataset) error {
	rows := []int{0}
	if n := ds.df.Rows(); n >= 3 {
		rows = []int{0, n / 2, n - 1}
	}
	decision, err := shap.DecisionChart(explainer, model, ds.df, ds.features, rows)
	if err != nil {
		return err
	}
	waterfall, err := shap.WaterfallChart(explainer, model, ds.df, ds.features, 0)
	if err != nil {
		return err
	}
	force, err := shap.ForceChart(explainer, model, ds.df, ds.features, 0, ds.domains, nil)
	if err != nil {
		return err
	}
	summary, err := shap.SummaryChart(explainer, model, ds.df, ds.features, 0)
	if err != nil {
		return err
	}
	dependence, err := shap.DependenceChart(explainer, model, ds.df, ds.features, ds.features[0], "")
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = "Attribution Charts"
	page.AddCharts(decision, waterfall, force, summary, dependence)
	return writePage(dir, "shap.html", page)
}

func renderModelViews(dir string, model ports.Regressor, ds *dataset) error {
	page := components.NewPage()
	page.PageTitle = "Model Structure"

	if provider, ok := model.(ports.ImportanceProvider); ok {
		importance, err := xai.ImportanceChart(provider, 0)
		switch {
		case errors.Is(err, ports.ErrNoImportance):
			logger.Warn("model reports no importance ranking, skipping chart")
		case err != nil:
			return err
		default:
			page.AddCharts(importance)
		}
	} else {
		logger.Warn("model exposes no importance ranking, skipping chart")
	}

	if provider, ok := model.(ports.InteractionProvider); ok {
		interaction, err := xai.InteractionChart(provider, 0)
		switch {
		case errors.Is(err, ports.ErrNoInteraction):
			logger.Warn("model reports no interaction strengths, skipping chart")
		case err != nil:
			return err
		default:
			page.AddCharts(interaction)
		}
	} else {
		logger.Warn("model exposes no interaction strengths, skipping chart")
	}

	pdp, err := xai.PartialDependenceChart(model, ds.df, ds.features, 0)
	if err != nil {
		return err
	}
	page.AddCharts(pdp)

	return writePage(dir, "xai.html", page)
}

func writePage(dir, name string, page *components.Page) error {
	logger.Debug("rendering %s", name)
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	logger.Info("wrote %s", filepath.Join(dir, name))
	return nil
}
