package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/app"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	apihttp "github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/http"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var (
	headerColor = color.New(color.FgBlue, color.Bold)
	slotColor   = color.New(color.FgCyan)
	dimColor    = color.New(color.FgHiBlack)
	warnColor   = color.New(color.FgYellow, color.Bold)
)

type planFlags struct {
	file      string
	dailyCap  float64
	excessCap float64
	meals     int
	threshold float64
	multiDay  bool
	output    string
}

var planOpts planFlags

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Allocate a meal plan from a JSON pool",
	Long: `Reads a pool in the body format of POST /api/plan and prints the plan.
Flags override the values in the file. The built-in catalog is used unless
the file carries its own.`,
	Example: `  energyvalue plan -f pool.json --daily-cap 2000 --meals 4
  cat pool.json | energyvalue plan -f - -o json`,
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planOpts.file, "file", "f", "", "pool file, or - for stdin (required)")
	f.Float64Var(&planOpts.dailyCap, "daily-cap", 0, "daily energy limit in kcal")
	f.Float64Var(&planOpts.excessCap, "excess-cap", 0, "tolerated kcal above the daily limit")
	f.IntVar(&planOpts.meals, "meals", 0, "meals per day (4 or 5)")
	f.Float64Var(&planOpts.threshold, "threshold", 0, "multi-day threshold as a multiple of the daily limit")
	f.BoolVar(&planOpts.multiDay, "multi", false, "always plan over days")
	f.StringVarP(&planOpts.output, "output", "o", outputText, "output format: text or json")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if planOpts.output != outputText && planOpts.output != outputJSON {
		return fmt.Errorf("unknown output format %q", planOpts.output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.InitWithWriter("warn", true, cmd.ErrOrStderr())

	req, err := readPlanRequest(cmd.InOrStdin(), planOpts.file)
	if err != nil {
		return err
	}
	applyPlanFlags(cmd, req, planOpts)
	if err := req.Validate(); err != nil {
		return err
	}

	// The CLI never touches MongoDB.
	services := app.InitializeServices(*cfg, nil)
	defer services.Engine.Stop()

	allocReq, err := apihttp.NewAllocationRequest(cmd.Context(), services.Catalog, req, cfg.Planner.DefaultMealsPerDay)
	if err != nil {
		return err
	}
	allocReq.ForceMultiDay = planOpts.multiDay

	plan, err := services.Engine.Allocate(allocReq)
	if err != nil {
		return err
	}

	if planOpts.output == outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	return renderPlan(cmd.OutOrStdout(), plan)
}

func readPlanRequest(stdin io.Reader, path string) (*dto.PlanRequest, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open pool: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req dto.PlanRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode pool: %w", err)
	}
	return &req, nil
}

func applyPlanFlags(cmd *cobra.Command, req *dto.PlanRequest, opts planFlags) {
	flags := cmd.Flags()
	if flags.Changed("daily-cap") {
		req.DailyCap = opts.dailyCap
	}
	if flags.Changed("excess-cap") {
		req.ExcessCap = opts.excessCap
	}
	if flags.Changed("meals") {
		req.MealsPerDay = opts.meals
	}
	if flags.Changed("threshold") {
		threshold := opts.threshold
		req.ThresholdFactor = &threshold
	}
}

func renderPlan(w io.Writer, plan model.MealPlan) error {
	if plan.DayCount() == 0 {
		_, _ = headerColor.Fprintf(w, "%s is empty\n", planModeLabel(plan.Mode))
		_, _ = dimColor.Fprintln(w, "no product has a positive weight, nothing to plan")
		return nil
	}

	_, _ = headerColor.Fprintf(w, "%s over %s\n", planModeLabel(plan.Mode), pluralize(plan.DayCount(), "day", "days"))
	_, _ = dimColor.Fprintf(w, "total %s kcal, daily cap %s kcal (+%s)\n",
		formatKcal(plan.TotalKcal), formatKcal(plan.DailyCap), formatKcal(plan.ExcessCap))

	for _, day := range plan.Days {
		_, _ = fmt.Fprintln(w)
		if plan.Mode == model.ModeMultiDay {
			_, _ = headerColor.Fprintf(w, "Day %d", day.Day)
			_, _ = dimColor.Fprintf(w, "  %s kcal\n", formatKcal(day.Kcal))
		} else {
			_, _ = headerColor.Fprintf(w, "Day %d\n", day.Day)
		}
		for _, meal := range day.Meals.Meals {
			_, _ = slotColor.Fprintf(w, "  %s\n", slotLabel(meal.Slot))
			if len(meal.Items) == 0 {
				_, _ = dimColor.Fprintln(w, "    (empty)")
				continue
			}
			for _, item := range meal.Items {
				_, _ = fmt.Fprintf(w, "    %-24s %10s g\n", item.Name, formatGrams(item.Grams))
			}
		}
	}

	if plan.DensityFallbacks > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = warnColor.Fprintf(w, "%s not found in the catalog, default density used\n",
			pluralize(plan.DensityFallbacks, "product", "products"))
	}
	return nil
}

func planModeLabel(mode model.PlanMode) string {
	if mode == model.ModeMultiDay {
		return "Multi-day plan"
	}
	return "Single-day plan"
}

func slotLabel(slot model.Slot) string {
	s := strings.ReplaceAll(string(slot), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatKcal(v float64) string {
	return humanize.CommafWithDigits(v, 0)
}

func formatGrams(v float64) string {
	return humanize.CommafWithDigits(v, 1)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), plural)
}
