package controllers

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "nutrilog/backend/models"
)

func strp(s string) *string { return &s }
func f64p(v float64) *float64 { return &v }
func intp(v int) *int { return &v }

func TestApplyWizardFieldsMetric(t *testing.T) {
    p := &models.Profile{UnitSystem: "metric"}
    err := applyWizardFields(p, WizardStepRequest{
        DisplayName:   strp("  Dana  "),
        BirthDate:     strp("1990-06-15"),
        Sex:           strp("female"),
        HeightCm:      f64p(165),
        WeightKg:      f64p(60),
        BodyFatPct:    f64p(24),
        ActivityLevel: strp("moderate"),
        GoalType:      strp("lose"),
        GoalWeightKg:  f64p(55),
        GoalWeeks:     intp(12),
    })
    require.NoError(t, err)
    assert.Equal(t, "Dana", *p.DisplayName)
    assert.Equal(t, 165.0, *p.HeightCm)
    assert.Equal(t, 60.0, *p.WeightKg)
    assert.Equal(t, "lose", *p.GoalType)
    assert.Empty(t, wizardMissing(p))
    assert.NoError(t, checkGoalDirection(p))
}

func TestApplyWizardFieldsImperialConversion(t *testing.T) {
    p := &models.Profile{UnitSystem: "metric"}
    err := applyWizardFields(p, WizardStepRequest{
        UnitSystem: strp("imperial"),
        HeightFt:   intp(5),
        HeightIn:   f64p(10),
        WeightLb:   f64p(165),
    })
    require.NoError(t, err)
    assert.Equal(t, "imperial", p.UnitSystem)
    assert.Equal(t, 177.8, *p.HeightCm)
    assert.Equal(t, 74.8, *p.WeightKg)
}

func TestApplyWizardFieldsRejects(t *testing.T) {
    cases := []struct {
        name string
        req  WizardStepRequest
    }{
        {"blank name", WizardStepRequest{DisplayName: strp("   ")}},
        {"bad date", WizardStepRequest{BirthDate: strp("15/06/1990")}},
        {"too young", WizardStepRequest{BirthDate: strp(time.Now().AddDate(-10, 0, 0).Format("2006-01-02"))}},
        {"bad sex", WizardStepRequest{Sex: strp("yes")}},
        {"bad unit system", WizardStepRequest{UnitSystem: strp("furlongs")}},
        {"height too low", WizardStepRequest{HeightCm: f64p(80)}},
        {"height too high", WizardStepRequest{HeightCm: f64p(260)}},
        {"weight too low", WizardStepRequest{WeightKg: f64p(20)}},
        {"body fat too high", WizardStepRequest{BodyFatPct: f64p(80)}},
        {"bad activity", WizardStepRequest{ActivityLevel: strp("heroic")}},
        {"bad goal type", WizardStepRequest{GoalType: strp("bulk")}},
        {"goal weight too high", WizardStepRequest{GoalWeightKg: f64p(400)}},
        {"timeline too long", WizardStepRequest{GoalWeeks: intp(200)}},
        {"timeline zero", WizardStepRequest{GoalWeeks: intp(0)}},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            p := &models.Profile{UnitSystem: "metric"}
            assert.Error(t, applyWizardFields(p, tc.req))
        })
    }
}

func TestApplyWizardFieldsInvalidFieldLeavesProfileUntouched(t *testing.T) {
    p := &models.Profile{UnitSystem: "metric"}
    err := applyWizardFields(p, WizardStepRequest{HeightCm: f64p(300)})
    assert.Error(t, err)
    assert.Nil(t, p.HeightCm)
}

func TestWizardMissing(t *testing.T) {
    p := &models.Profile{UnitSystem: "metric"}
    missing := wizardMissing(p)
    assert.Contains(t, missing, "display_name")
    assert.Contains(t, missing, "height")
    assert.Contains(t, missing, "goal_type")

    // maintain goals need no goal weight or timeline
    p.GoalType = strp("maintain")
    assert.NotContains(t, wizardMissing(p), "goal_weight")
    assert.NotContains(t, wizardMissing(p), "goal_weeks")

    p.GoalType = strp("lose")
    assert.Contains(t, wizardMissing(p), "goal_weight")
    assert.Contains(t, wizardMissing(p), "goal_weeks")
}

func TestMaxReachableStep(t *testing.T) {
    p := &models.Profile{UnitSystem: "metric"}
    // an empty profile cannot jump ahead, whatever step the client sends
    assert.Equal(t, 1, maxReachableStep(p))

    p.DisplayName = strp("Dana")
    assert.Equal(t, 2, maxReachableStep(p))
    birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
    p.BirthDate = &birth
    assert.Equal(t, 3, maxReachableStep(p))
    p.Sex = strp("female")
    assert.Equal(t, 4, maxReachableStep(p))
    p.HeightCm = f64p(165)
    assert.Equal(t, 5, maxReachableStep(p))
    p.WeightKg = f64p(60)
    assert.Equal(t, 6, maxReachableStep(p))
    p.ActivityLevel = strp("moderate")
    assert.Equal(t, 7, maxReachableStep(p))

    // a lose goal needs its goal weight before the timeline step opens
    p.GoalType = strp("lose")
    assert.Equal(t, 7, maxReachableStep(p))
    p.GoalWeightKg = f64p(55)
    assert.Equal(t, 8, maxReachableStep(p))

    // maintain skips the goal-weight requirement
    p.GoalType = strp("maintain")
    p.GoalWeightKg = nil
    assert.Equal(t, 8, maxReachableStep(p))

    // optional body fat never gates navigation
    p.BodyFatPct = nil
    assert.Equal(t, 8, maxReachableStep(p))
}

func TestCheckGoalDirection(t *testing.T) {
    p := &models.Profile{WeightKg: f64p(80), GoalWeightKg: f64p(85), GoalType: strp("lose")}
    assert.Error(t, checkGoalDirection(p))
    p.GoalType = strp("gain")
    assert.NoError(t, checkGoalDirection(p))
    p.GoalWeightKg = f64p(75)
    assert.Error(t, checkGoalDirection(p))
    p.GoalType = strp("maintain")
    assert.NoError(t, checkGoalDirection(p))
}

func TestAgeAt(t *testing.T) {
    birth := time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC)
    assert.Equal(t, 25, ageAt(birth, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))
    assert.Equal(t, 26, ageAt(birth, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
    assert.Equal(t, 26, ageAt(birth, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)))

    // Feb 29 birthday in a non-leap year
    leap := time.Date(2004, 2, 29, 0, 0, 0, 0, time.UTC)
    assert.Equal(t, 21, ageAt(leap, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
    assert.Equal(t, 22, ageAt(leap, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}
