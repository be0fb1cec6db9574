package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"nutrilog/backend/database"
	"nutrilog/backend/models"
)

func Me() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var u models.User
        err := database.Pool.QueryRow(ctx, `SELECT u.id, u.name, u.email, u.is_admin, COALESCE(p.onboarding_complete,false), u.created_at
FROM users u LEFT JOIN profiles p ON p.user_id=u.id WHERE u.id=$1`, uid).
            Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.OnboardingComplete, &u.CreatedAt)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
            return
        }
        c.JSON(http.StatusOK, u)
    }
}
