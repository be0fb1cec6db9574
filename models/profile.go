package models

import "time"

// Profile holds the wizard biometrics. Fields are pointers until the
// matching wizard step has been saved; stored values are always metric.
type Profile struct {
    UserID             int64      `json:"user_id"`
    DisplayName        *string    `json:"display_name"`
    BirthDate          *time.Time `json:"birth_date"`
    Sex                *string    `json:"sex"`
    HeightCm           *float64   `json:"height_cm"`
    WeightKg           *float64   `json:"weight_kg"`
    BodyFatPct         *float64   `json:"body_fat_pct"`
    ActivityLevel      *string    `json:"activity_level"`
    GoalType           *string    `json:"goal_type"`
    GoalWeightKg       *float64   `json:"goal_weight_kg"`
    GoalWeeks          *int       `json:"goal_weeks"`
    UnitSystem         string     `json:"unit_system"`
    OnboardingStep     int        `json:"onboarding_step"`
    OnboardingComplete bool       `json:"onboarding_complete"`
    UpdatedAt          time.Time  `json:"updated_at"`
}

type CalorieTarget struct {
    ID             int64     `json:"id"`
    UserID         int64     `json:"user_id"`
    BMR            float64   `json:"bmr"`
    TDEE           float64   `json:"tdee"`
    TargetCalories int       `json:"target_calories"`
    WeeklyChangeKg float64   `json:"weekly_change_kg"`
    CreatedAt      time.Time `json:"created_at"`
}
