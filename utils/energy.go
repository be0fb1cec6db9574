package utils

import "math"

// Energy math behind onboarding completion and goal edits.
// Mifflin-St Jeor BMR, fixed activity multipliers, linear weeks-to-goal
// deficit/surplus with static safety clamps.

const (
    kcalPerKg       = 7700.0
    maxDailyDelta   = 1000.0 // kcal, deficit or surplus
    minTargetFemale = 1200
    minTargetMale   = 1500
)

var activityMultipliers = map[string]float64{
    "sedentary":   1.2,
    "light":       1.375,
    "moderate":    1.55,
    "active":      1.725,
    "very_active": 1.9,
}

func ActivityMultiplier(level string) (float64, bool) {
    m, ok := activityMultipliers[level]
    return m, ok
}

// BMR returns the Mifflin-St Jeor basal metabolic rate in whole kcal.
func BMR(sex string, weightKg, heightCm float64, age int) float64 {
    b := 10*weightKg + 6.25*heightCm - 5*float64(age)
    if sex == "male" {
        b += 5
    } else {
        b -= 161
    }
    return math.Round(b)
}

func TDEE(bmr float64, activityLevel string) float64 {
    m, ok := activityMultipliers[activityLevel]
    if !ok {
        m = activityMultipliers["sedentary"]
    }
    return math.Round(bmr * m)
}

type TargetResult struct {
    BMR            float64
    TDEE           float64
    TargetCalories int
    WeeklyChangeKg float64
}

// CalorieTarget derives the daily calorie target for a goal.
// goalType "maintain" ignores goalWeightKg/goalWeeks and targets TDEE.
// The implied daily deficit/surplus is clamped to +-1000 kcal, the final
// target to [sex floor, 2*BMR], and the reported weekly change reflects
// the clamped numbers, not the requested ones.
func CalorieTarget(sex string, weightKg, heightCm float64, age int, activityLevel, goalType string, goalWeightKg float64, goalWeeks int) TargetResult {
    bmr := BMR(sex, weightKg, heightCm, age)
    tdee := TDEE(bmr, activityLevel)

    var daily float64
    if goalType != "maintain" && goalWeeks > 0 {
        weekly := (goalWeightKg - weightKg) / float64(goalWeeks)
        daily = weekly * kcalPerKg / 7
        if daily > maxDailyDelta {
            daily = maxDailyDelta
        }
        if daily < -maxDailyDelta {
            daily = -maxDailyDelta
        }
    }

    target := tdee + daily

    floor := float64(minTargetFemale)
    if sex == "male" {
        floor = minTargetMale
    }
    if target < floor {
        target = floor
    }
    if ceil := 2 * bmr; target > ceil {
        target = ceil
    }

    // nearest 10 kcal, the granularity the app displays
    targetInt := int(math.Round(target/10) * 10)

    effectiveWeekly := (float64(targetInt) - tdee) * 7 / kcalPerKg
    return TargetResult{
        BMR:            bmr,
        TDEE:           tdee,
        TargetCalories: targetInt,
        WeeklyChangeKg: math.Round(effectiveWeekly*100) / 100,
    }
}
