package main

import (
	"github.com/gin-gonic/gin"
	"log"
	"nutrilog/backend/config"
	"nutrilog/backend/database"
	"nutrilog/backend/routes"
)

func main() {
    cfg := config.Load()
    database.Connect(cfg.DatabaseURL)
    database.EnsureSchema()
    r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	r.Static("/uploads", cfg.UploadDir)
	routes.Register(r, cfg)
	log.Printf("server on :%s", cfg.Port)
	r.Run(":" + cfg.Port)
}
