package controllers

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "nutrilog/backend/config"
    "nutrilog/backend/database"
    "nutrilog/backend/models"
    "nutrilog/backend/utils"
)

func hash(pw string) string {
    h := sha256.Sum256([]byte(pw))
    return hex.EncodeToString(h[:])
}

func Register(cfg config.Config) gin.HandlerFunc {
    return func(c *gin.Context) {
        var req models.RegisterRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        if req.Password == "" || req.Password != req.Confirm {
            c.JSON(http.StatusBadRequest, gin.H{"error": "password mismatch"})
            return
        }
        if req.Email == "" || req.Name == "" {
            c.JSON(http.StatusBadRequest, gin.H{"error": "name and email required"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        // Never upsert here: that would let anyone reset an existing
        // account's password unauthenticated.
        var exists bool
        if err := database.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, req.Email).Scan(&exists); err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        if exists {
            c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
            return
        }
        var id int64
        err := database.Pool.QueryRow(ctx, `INSERT INTO users(name,email,password_hash)
VALUES($1,$2,$3) RETURNING id`, req.Name, req.Email, hash(req.Password)).Scan(&id)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        // Seed the wizard row so step saves are plain updates.
        _, _ = database.Pool.Exec(ctx, `INSERT INTO profiles(user_id) VALUES($1) ON CONFLICT (user_id) DO NOTHING`, id)
        token, _ := utils.GenerateJWT(cfg.JWTSecret, id, false, 24*time.Hour)
        c.JSON(http.StatusOK, gin.H{"token": token})
    }
}

func Login(cfg config.Config) gin.HandlerFunc {
    return func(c *gin.Context) {
        var req models.LoginRequest
        if err := c.ShouldBindJSON(&req); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var id int64
        var pw string
        var admin bool
        err := database.Pool.QueryRow(ctx, `SELECT id, password_hash, is_admin FROM users WHERE email=$1`, req.Email).Scan(&id, &pw, &admin)
        if err != nil || pw != hash(req.Password) {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
            return
        }
        token, _ := utils.GenerateJWT(cfg.JWTSecret, id, admin, 24*time.Hour)
        c.JSON(http.StatusOK, gin.H{"token": token})
    }
}
