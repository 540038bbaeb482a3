package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

func init() {
	color.NoColor = true
}

func TestReadPlanRequest(t *testing.T) {
	dir := t.TempDir()
	poolPath := filepath.Join(dir, "pool.json")
	require.NoError(t, os.WriteFile(poolPath, []byte(`{"items":[{"name":"Rice","grams":500}],"daily_cap":2000}`), 0o600))

	tests := []struct {
		name        string
		stdin       string
		path        string
		expectedErr string
		validate    func(*testing.T, float64, int)
	}{
		{
			name: "from file",
			path: poolPath,
			validate: func(t *testing.T, dailyCap float64, items int) {
				assert.Equal(t, 2000.0, dailyCap)
				assert.Equal(t, 1, items)
			},
		},
		{
			name:  "from stdin",
			stdin: `{"items":[{"name":"oats","grams":100},{"name":"milk","grams":300}]}`,
			path:  "-",
			validate: func(t *testing.T, dailyCap float64, items int) {
				assert.Zero(t, dailyCap)
				assert.Equal(t, 2, items)
			},
		},
		{
			name:        "missing file",
			path:        filepath.Join(dir, "missing.json"),
			expectedErr: "open pool",
		},
		{
			name:        "malformed json",
			stdin:       `{"items":`,
			path:        "-",
			expectedErr: "decode pool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := readPlanRequest(strings.NewReader(tt.stdin), tt.path)

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			tt.validate(t, req.DailyCap, len(req.Items))
		})
	}
}

func TestRenderPlan(t *testing.T) {
	plan := model.MealPlan{
		Mode:             model.ModeMultiDay,
		TotalKcal:        4300,
		DailyCap:         2000,
		ExcessCap:        200,
		MealsPerDay:      4,
		DensityFallbacks: 1,
		Days: []model.DayPlan{
			{
				Day:  1,
				Kcal: 2150,
				Meals: model.SlotAssignment{Meals: []model.Meal{
					{Slot: model.SlotBreakfast, Items: []model.Item{{Name: "rice", Grams: 1250.5}}},
					{Slot: model.SlotSnack},
					{Slot: model.SlotLunch},
					{Slot: model.SlotDinner},
				}},
			},
			{
				Day:  2,
				Kcal: 2150,
				Meals: model.SlotAssignment{Meals: []model.Meal{
					{Slot: model.SlotSecondSnack, Items: []model.Item{{Name: "kefir", Grams: 100}}},
				}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderPlan(&buf, plan))
	out := buf.String()

	assert.Contains(t, out, "Multi-day plan over 2 days")
	assert.Contains(t, out, "total 4,300 kcal, daily cap 2,000 kcal (+200)")
	assert.Contains(t, out, "Day 1  2,150 kcal")
	assert.Contains(t, out, "Breakfast")
	assert.Contains(t, out, "1,250.5 g")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "Second snack")
	assert.Contains(t, out, "1 product not found in the catalog")
}

func TestRenderPlan_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPlan(&buf, model.MealPlan{Mode: model.ModeMultiDay, DailyCap: 2000}))

	assert.Contains(t, buf.String(), "Multi-day plan is empty")
	assert.Contains(t, buf.String(), "nothing to plan")
}

// runPlanCommand writes pool to a file and runs the plan command on it.
// Every flag the command reads must be given in args since cobra keeps
// flag state between runs.
func runPlanCommand(t *testing.T, pool string, args ...string) (string, error) {
	t.Helper()
	poolPath := filepath.Join(t.TempDir(), "pool.json")
	require.NoError(t, os.WriteFile(poolPath, []byte(pool), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"plan", "-f", poolPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		planOpts = planFlags{output: outputText}
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPlanCommand(t *testing.T) {
	pool := `{"items":[{"name":"rice","grams":1000}],"catalog":[{"name":"rice","kcal_per_100g":360}]}`

	out, err := runPlanCommand(t, pool, "--daily-cap", "2000", "--excess-cap", "0", "--meals", "4", "--multi=false", "-o", "json")
	require.NoError(t, err)

	var plan model.MealPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, model.ModeMultiDay, plan.Mode)
	assert.InDelta(t, 3600, plan.TotalKcal, 1e-6)
	assert.Equal(t, 2, plan.DayCount())
	for _, day := range plan.Days {
		assert.LessOrEqual(t, day.Kcal, 2000+1e-6)
	}
}

func TestPlanCommand_RejectsNegativeDuplicate(t *testing.T) {
	pool := `{"items":[{"name":"rice","grams":-500},{"name":"Rice","grams":600}]}`

	out, err := runPlanCommand(t, pool, "--daily-cap", "2000", "--excess-cap", "0", "--meals", "4", "--multi=false", "-o", "text")

	assert.ErrorIs(t, err, model.ErrInvalidMass)
	assert.Empty(t, out)
}

func TestPlanCommand_EmptyMultiDayPlan(t *testing.T) {
	pool := `{"items":[{"name":"rice","grams":0},{"name":"oats","grams":0}]}`

	out, err := runPlanCommand(t, pool, "--daily-cap", "2000", "--excess-cap", "0", "--meals", "4", "--multi", "-o", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "Multi-day plan is empty")
}
