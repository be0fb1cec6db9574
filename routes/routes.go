package routes

import (
	"github.com/gin-gonic/gin"
	"nutrilog/backend/config"
	"nutrilog/backend/controllers"
	"nutrilog/backend/middlewares"
)

func Register(r *gin.Engine, cfg config.Config) {
    api := r.Group("/api")
    {
        auth := api.Group("/auth")
        auth.POST("/register", controllers.Register(cfg))
        auth.POST("/login", controllers.Login(cfg))

        priv := api.Group("/")
        priv.Use(middlewares.Auth(cfg.JWTSecret))
        priv.GET("me", controllers.Me())
        // Onboarding wizard (8 steps)
        priv.GET("onboarding/state", controllers.OnboardingState())
        priv.PUT("onboarding/step", controllers.OnboardingSaveStep())
        priv.POST("onboarding/complete", controllers.OnboardingComplete())
        // Goal editing (same fields as the wizard)
        priv.GET("goals", controllers.GetGoals())
        priv.PUT("goals", controllers.UpdateGoals())
        priv.GET("goals/target", controllers.GetLatestTarget())
        // Daily medication/supplement log
        priv.GET("meds", controllers.ListMedLogs())
        priv.POST("meds", controllers.CreateMedLog())
        priv.PATCH("meds/:id", controllers.UpdateMedLog())
        priv.POST("meds/clone", controllers.CloneMedDay())
        priv.DELETE("meds", controllers.DeleteMedLogs())
        priv.GET("meds/chips", controllers.MedChips())
        priv.GET("meds/export", controllers.ExportMedLogs())
        // Support tickets + announcements
        priv.POST("support/cases", controllers.CreateSupportCase(cfg))
        priv.GET("support/cases", controllers.ListMySupportCases())
        priv.GET("support/cases/:id", controllers.GetSupportCase())
        priv.POST("support/cases/:id/messages", controllers.ReplySupportCase())
        priv.GET("announcements", controllers.ListAnnouncements())

        admin := priv.Group("admin")
        admin.Use(middlewares.AdminOnly())
        admin.GET("support/cases", controllers.AdminListSupportCases())
        admin.PUT("support/cases/:id/status", controllers.AdminSetCaseStatus())
        admin.POST("support/cases/:id/suggest-reply", controllers.AdminSuggestReply(cfg))
        admin.POST("announcements", controllers.AdminCreateAnnouncement())
        admin.PUT("announcements/:id", controllers.AdminUpdateAnnouncement())
    }
}
