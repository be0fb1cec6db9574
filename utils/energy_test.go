package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestBMR(t *testing.T) {
    assert.Equal(t, 1780.0, BMR("male", 80, 180, 30))
    assert.Equal(t, 1345.0, BMR("female", 60, 165, 25))
}

func TestTDEEMultipliers(t *testing.T) {
    assert.Equal(t, 2136.0, TDEE(1780, "sedentary"))
    assert.Equal(t, 2759.0, TDEE(1780, "moderate"))
    assert.Equal(t, 3382.0, TDEE(1780, "very_active"))
    // unknown level falls back to sedentary
    assert.Equal(t, 2136.0, TDEE(1780, "couch"))
}

func TestActivityMultiplier(t *testing.T) {
    m, ok := ActivityMultiplier("light")
    assert.True(t, ok)
    assert.Equal(t, 1.375, m)
    _, ok = ActivityMultiplier("extreme")
    assert.False(t, ok)
}

func TestCalorieTargetMaintain(t *testing.T) {
    res := CalorieTarget("male", 80, 180, 30, "moderate", "maintain", 80, 0)
    assert.Equal(t, 1780.0, res.BMR)
    assert.Equal(t, 2759.0, res.TDEE)
    assert.Equal(t, 2760, res.TargetCalories) // TDEE to nearest 10
    assert.Equal(t, 0.0, res.WeeklyChangeKg)
}

func TestCalorieTargetLoseHitsFloor(t *testing.T) {
    // 1 kg/week asks for an 1100 kcal daily deficit; the delta clamp and
    // the male floor both bite.
    res := CalorieTarget("male", 100, 180, 40, "sedentary", "lose", 90, 10)
    assert.Equal(t, 1930.0, res.BMR)
    assert.Equal(t, 2316.0, res.TDEE)
    assert.Equal(t, 1500, res.TargetCalories)
    assert.Equal(t, -0.74, res.WeeklyChangeKg)
}

func TestCalorieTargetGain(t *testing.T) {
    res := CalorieTarget("female", 50, 160, 20, "light", "gain", 55, 10)
    assert.Equal(t, 1239.0, res.BMR)
    assert.Equal(t, 1704.0, res.TDEE)
    assert.Equal(t, 2250, res.TargetCalories)
    assert.Equal(t, 0.5, res.WeeklyChangeKg)
}

func TestCalorieTargetSurplusClamped(t *testing.T) {
    // 6 kg/week is absurd; surplus is clamped to +1000 kcal/day.
    res := CalorieTarget("male", 60, 170, 20, "sedentary", "gain", 90, 5)
    assert.Equal(t, 1568.0, res.BMR)
    assert.Equal(t, 1882.0, res.TDEE)
    assert.Equal(t, 2880, res.TargetCalories)
    assert.Equal(t, 0.91, res.WeeklyChangeKg)
}

func TestCalorieTargetCeilingAtTwiceBMR(t *testing.T) {
    res := CalorieTarget("female", 45, 150, 60, "sedentary", "gain", 60, 4)
    assert.Equal(t, 927.0, res.BMR)
    assert.Equal(t, 1112.0, res.TDEE)
    // clamped surplus would land at 2112; 2*BMR caps it at 1854 -> 1850
    assert.Equal(t, 1850, res.TargetCalories)
}
