package controllers

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "nutrilog/backend/database"
    "nutrilog/backend/models"
    "nutrilog/backend/utils"
)

// WizardStepRequest carries any subset of the 8-step wizard fields.
// Height and weight may arrive metric or imperial; stored values are metric.
type WizardStepRequest struct {
    Step          *int     `json:"step"`
    DisplayName   *string  `json:"display_name"`
    BirthDate     *string  `json:"birth_date"` // YYYY-MM-DD
    Sex           *string  `json:"sex"`
    UnitSystem    *string  `json:"unit_system"`
    HeightCm      *float64 `json:"height_cm"`
    HeightFt      *int     `json:"height_ft"`
    HeightIn      *float64 `json:"height_in"`
    WeightKg      *float64 `json:"weight_kg"`
    WeightLb      *float64 `json:"weight_lb"`
    BodyFatPct    *float64 `json:"body_fat_pct"`
    ActivityLevel *string  `json:"activity_level"`
    GoalType      *string  `json:"goal_type"`
    GoalWeightKg  *float64 `json:"goal_weight_kg"`
    GoalWeightLb  *float64 `json:"goal_weight_lb"`
    GoalWeeks     *int     `json:"goal_weeks"`
}

var (
    validSexes       = map[string]bool{"male": true, "female": true}
    validGoalTypes   = map[string]bool{"lose": true, "maintain": true, "gain": true}
    validUnitSystems = map[string]bool{"metric": true, "imperial": true}
)

// applyWizardFields validates each present field and folds it into the
// profile, converting imperial input to metric. First invalid field wins.
func applyWizardFields(p *models.Profile, req WizardStepRequest) error {
    if req.DisplayName != nil {
        name := strings.TrimSpace(*req.DisplayName)
        if name == "" || len(name) > 60 {
            return errors.New("display_name must be 1-60 characters")
        }
        p.DisplayName = &name
    }
    if req.BirthDate != nil {
        d, err := time.Parse("2006-01-02", *req.BirthDate)
        if err != nil {
            return errors.New("birth_date must be YYYY-MM-DD")
        }
        age := ageAt(d, time.Now())
        if age < 13 || age > 100 {
            return errors.New("age must be between 13 and 100")
        }
        p.BirthDate = &d
    }
    if req.Sex != nil {
        if !validSexes[*req.Sex] {
            return errors.New("sex must be male or female")
        }
        p.Sex = req.Sex
    }
    if req.UnitSystem != nil {
        if !validUnitSystems[*req.UnitSystem] {
            return errors.New("unit_system must be metric or imperial")
        }
        p.UnitSystem = *req.UnitSystem
    }

    heightCm := req.HeightCm
    if heightCm == nil && req.HeightFt != nil {
        in := 0.0
        if req.HeightIn != nil {
            in = *req.HeightIn
        }
        v := utils.FtInToCm(*req.HeightFt, in)
        heightCm = &v
    }
    if heightCm != nil {
        if *heightCm < 90 || *heightCm > 250 {
            return errors.New("height must be between 90 and 250 cm")
        }
        v := utils.Round1(*heightCm)
        p.HeightCm = &v
    }

    weightKg := req.WeightKg
    if weightKg == nil && req.WeightLb != nil {
        v := utils.LbToKg(*req.WeightLb)
        weightKg = &v
    }
    if weightKg != nil {
        if *weightKg < 30 || *weightKg > 300 {
            return errors.New("weight must be between 30 and 300 kg")
        }
        v := utils.Round1(*weightKg)
        p.WeightKg = &v
    }

    if req.BodyFatPct != nil {
        if *req.BodyFatPct < 3 || *req.BodyFatPct > 70 {
            return errors.New("body_fat_pct must be between 3 and 70")
        }
        p.BodyFatPct = req.BodyFatPct
    }
    if req.ActivityLevel != nil {
        if _, ok := utils.ActivityMultiplier(*req.ActivityLevel); !ok {
            return errors.New("activity_level must be one of sedentary, light, moderate, active, very_active")
        }
        p.ActivityLevel = req.ActivityLevel
    }
    if req.GoalType != nil {
        if !validGoalTypes[*req.GoalType] {
            return errors.New("goal_type must be lose, maintain or gain")
        }
        p.GoalType = req.GoalType
    }

    goalKg := req.GoalWeightKg
    if goalKg == nil && req.GoalWeightLb != nil {
        v := utils.LbToKg(*req.GoalWeightLb)
        goalKg = &v
    }
    if goalKg != nil {
        if *goalKg < 30 || *goalKg > 300 {
            return errors.New("goal weight must be between 30 and 300 kg")
        }
        v := utils.Round1(*goalKg)
        p.GoalWeightKg = &v
    }

    if req.GoalWeeks != nil {
        if *req.GoalWeeks < 1 || *req.GoalWeeks > 104 {
            return errors.New("goal_weeks must be between 1 and 104")
        }
        p.GoalWeeks = req.GoalWeeks
    }
    return nil
}

// maxReachableStep caps wizard navigation at the first unfilled step:
// 1 name, 2 birth date, 3 sex, 4 height, 5 weight, 6 activity,
// 7 goal type and weight, 8 timeline. Body fat is optional and gates
// nothing; maintain goals skip the goal-weight requirement.
func maxReachableStep(p *models.Profile) int {
    switch {
    case p.DisplayName == nil:
        return 1
    case p.BirthDate == nil:
        return 2
    case p.Sex == nil:
        return 3
    case p.HeightCm == nil:
        return 4
    case p.WeightKg == nil:
        return 5
    case p.ActivityLevel == nil:
        return 6
    case p.GoalType == nil:
        return 7
    case *p.GoalType != "maintain" && p.GoalWeightKg == nil:
        return 7
    }
    return 8
}

func ageAt(birth, on time.Time) int {
    age := on.Year() - birth.Year()
    if birth.AddDate(age, 0, 0).After(on) {
        age--
    }
    return age
}

// wizardMissing lists fields still needed before completion.
// body_fat_pct is optional; goal weight and timeline only matter
// when the goal is not maintain.
func wizardMissing(p *models.Profile) []string {
    missing := []string{}
    if p.DisplayName == nil {
        missing = append(missing, "display_name")
    }
    if p.BirthDate == nil {
        missing = append(missing, "birth_date")
    }
    if p.Sex == nil {
        missing = append(missing, "sex")
    }
    if p.HeightCm == nil {
        missing = append(missing, "height")
    }
    if p.WeightKg == nil {
        missing = append(missing, "weight")
    }
    if p.ActivityLevel == nil {
        missing = append(missing, "activity_level")
    }
    if p.GoalType == nil {
        missing = append(missing, "goal_type")
    } else if *p.GoalType != "maintain" {
        if p.GoalWeightKg == nil {
            missing = append(missing, "goal_weight")
        }
        if p.GoalWeeks == nil {
            missing = append(missing, "goal_weeks")
        }
    }
    return missing
}

// checkGoalDirection rejects a goal weight on the wrong side of the
// current weight. Requires goal type, weight and goal weight to be set.
func checkGoalDirection(p *models.Profile) error {
    if p.GoalType == nil || *p.GoalType == "maintain" {
        return nil
    }
    if p.WeightKg == nil || p.GoalWeightKg == nil {
        return nil
    }
    switch *p.GoalType {
    case "lose":
        if *p.GoalWeightKg >= *p.WeightKg {
            return errors.New("goal weight must be below current weight for a lose goal")
        }
    case "gain":
        if *p.GoalWeightKg <= *p.WeightKg {
            return errors.New("goal weight must be above current weight for a gain goal")
        }
    }
    return nil
}

func loadProfile(ctx context.Context, uid int64) (*models.Profile, error) {
    var p models.Profile
    err := database.Pool.QueryRow(ctx, `SELECT user_id, display_name, birth_date, sex,
height_cm::float8, weight_kg::float8, body_fat_pct::float8, activity_level, goal_type,
goal_weight_kg::float8, goal_weeks::int, unit_system, onboarding_step, onboarding_complete, updated_at
FROM profiles WHERE user_id=$1`, uid).Scan(
        &p.UserID, &p.DisplayName, &p.BirthDate, &p.Sex,
        &p.HeightCm, &p.WeightKg, &p.BodyFatPct, &p.ActivityLevel, &p.GoalType,
        &p.GoalWeightKg, &p.GoalWeeks, &p.UnitSystem, &p.OnboardingStep, &p.OnboardingComplete, &p.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &p, nil
}

func saveProfile(ctx context.Context, p *models.Profile) error {
    _, err := database.Pool.Exec(ctx, `UPDATE profiles SET display_name=$1, birth_date=$2, sex=$3,
height_cm=$4, weight_kg=$5, body_fat_pct=$6, activity_level=$7, goal_type=$8,
goal_weight_kg=$9, goal_weeks=$10, unit_system=$11, onboarding_step=$12,
onboarding_complete=$13, updated_at=now() WHERE user_id=$14`,
        p.DisplayName, p.BirthDate, p.Sex,
        p.HeightCm, p.WeightKg, p.BodyFatPct, p.ActivityLevel, p.GoalType,
        p.GoalWeightKg, p.GoalWeeks, p.UnitSystem, p.OnboardingStep,
        p.OnboardingComplete, p.UserID)
    return err
}

// computeTarget runs the energy math for a filled profile and persists a
// fresh calorie_targets row. Caller has already checked wizardMissing.
func computeTarget(ctx context.Context, p *models.Profile) (utils.TargetResult, error) {
    goalWeight := *p.WeightKg
    goalWeeks := 0
    if p.GoalWeightKg != nil {
        goalWeight = *p.GoalWeightKg
    }
    if p.GoalWeeks != nil {
        goalWeeks = *p.GoalWeeks
    }
    res := utils.CalorieTarget(*p.Sex, *p.WeightKg, *p.HeightCm, ageAt(*p.BirthDate, time.Now()),
        *p.ActivityLevel, *p.GoalType, goalWeight, goalWeeks)
    _, err := database.Pool.Exec(ctx, `INSERT INTO calorie_targets(user_id, bmr, tdee, target_calories, weekly_change_kg)
VALUES($1,$2,$3,$4,$5)`, p.UserID, res.BMR, res.TDEE, res.TargetCalories, res.WeeklyChangeKg)
    return res, err
}

func OnboardingState() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        p, err := loadProfile(ctx, uid)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
            return
        }
        c.JSON(http.StatusOK, gin.H{
            "current_step": p.OnboardingStep,
            "complete":     p.OnboardingComplete,
            "missing":      wizardMissing(p),
            "profile":      p,
        })
    }
}

func OnboardingSaveStep() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        var req WizardStepRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        p, err := loadProfile(ctx, uid)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
            return
        }
        if err := applyWizardFields(p, req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        if req.Step != nil {
            step := *req.Step
            if step < 1 {
                step = 1
            }
            if step > 8 {
                step = 8
            }
            // Fields saved in this request count; jumping past an
            // unfilled step does not.
            if reach := maxReachableStep(p); step > reach {
                step = reach
            }
            p.OnboardingStep = step
        }
        if err := saveProfile(ctx, p); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"current_step": p.OnboardingStep, "missing": wizardMissing(p)})
    }
}

func OnboardingComplete() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        p, err := loadProfile(ctx, uid)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
            return
        }
        if missing := wizardMissing(p); len(missing) > 0 {
            c.JSON(http.StatusBadRequest, gin.H{"error": "wizard incomplete", "missing": missing})
            return
        }
        if err := checkGoalDirection(p); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        res, err := computeTarget(ctx, p)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        p.OnboardingComplete = true
        p.OnboardingStep = 8
        if err := saveProfile(ctx, p); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, gin.H{
            "bmr":              res.BMR,
            "tdee":             res.TDEE,
            "target_calories":  res.TargetCalories,
            "weekly_change_kg": res.WeeklyChangeKg,
        })
    }
}
