package controllers

import (
    "context"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "nutrilog/backend/database"
    "nutrilog/backend/models"
)

func latestTarget(ctx context.Context, uid int64) (*models.CalorieTarget, error) {
    var t models.CalorieTarget
    err := database.Pool.QueryRow(ctx, `SELECT id, user_id, bmr::float8, tdee::float8, target_calories::int, weekly_change_kg::float8, created_at
FROM calorie_targets WHERE user_id=$1 ORDER BY created_at DESC, id DESC LIMIT 1`, uid).
        Scan(&t.ID, &t.UserID, &t.BMR, &t.TDEE, &t.TargetCalories, &t.WeeklyChangeKg, &t.CreatedAt)
    if err != nil {
        return nil, err
    }
    return &t, nil
}

func GetGoals() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        p, err := loadProfile(ctx, uid)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
            return
        }
        out := gin.H{"profile": p}
        if t, err := latestTarget(ctx, uid); err == nil {
            out["target"] = t
        }
        c.JSON(http.StatusOK, out)
    }
}

// UpdateGoals reuses the wizard field set: any subset may change, the
// target is recomputed and appended on every successful edit.
func UpdateGoals() gin.HandlerFunc {
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
        if !p.OnboardingComplete {
            c.JSON(http.StatusConflict, gin.H{"error": "finish onboarding first"})
            return
        }
        if err := applyWizardFields(p, req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }
        if missing := wizardMissing(p); len(missing) > 0 {
            c.JSON(http.StatusBadRequest, gin.H{"error": "goal incomplete", "missing": missing})
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
        if err := saveProfile(ctx, p); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, gin.H{
            "profile": p,
            "target": gin.H{
                "bmr":              res.BMR,
                "tdee":             res.TDEE,
                "target_calories":  res.TargetCalories,
                "weekly_change_kg": res.WeeklyChangeKg,
            },
        })
    }
}

func GetLatestTarget() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        t, err := latestTarget(ctx, uid)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "no calorie target yet"})
            return
        }
        c.JSON(http.StatusOK, t)
    }
}
