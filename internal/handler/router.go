package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Log            *zap.Logger
	Gate           authenticator
	DB             pinger
	Metrics        http.Handler
	AllowedOrigins []string

	Auth     *AuthHandler
	Journals *JournalHandler
	Moods    *MoodHandler
	Users    *UserHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log), CORSMiddleware(d.AllowedOrigins, true))

	router.GET("/", Root)
	router.GET("/ping", Ping)
	if d.DB != nil {
		router.GET("/healthz", Healthz(d.DB, log))
	}
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics))
	}

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	// Logout runs the gate itself so it can revoke the exact token presented.
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/google/url", d.Auth.GoogleURL)
	auth.GET("/google/callback", d.Auth.GoogleCallback)

	protected := api.Group("")
	protected.Use(AuthMiddleware(d.Gate))

	protected.GET("/auth/me", d.Auth.Me)

	protected.GET("/user/profile", d.Users.GetProfile)
	protected.PUT("/user/profile", d.Users.EditProfile)
	protected.PUT("/user/password", d.Users.ChangePassword)

	protected.POST("/journals", d.Journals.CreateJournal)
	protected.GET("/journals", d.Journals.ListJournals)
	protected.GET("/journals/search", d.Journals.SearchJournals)
	protected.GET("/journals/stats", d.Journals.JournalStats)
	protected.GET("/journals/all", d.Journals.AllJournals)
	protected.GET("/journals/recent", d.Journals.RecentJournals)
	protected.GET("/journals/range", d.Journals.JournalRange)
	protected.GET("/journals/date/:date", d.Journals.JournalByDate)
	protected.GET("/journals/:id", d.Journals.GetJournal)
	protected.PUT("/journals/:id", d.Journals.UpdateJournal)
	protected.DELETE("/journals/:id", d.Journals.DeleteJournal)

	protected.POST("/moods", d.Moods.CreateMood)
	protected.GET("/moods", d.Moods.ListMoods)
	protected.GET("/moods/range", d.Moods.MoodRange)
	protected.GET("/moods/streak", d.Moods.MoodStreak)
	protected.GET("/moods/all", d.Moods.AllMoods)
	protected.GET("/moods/recent", d.Moods.RecentMoods)
	protected.GET("/moods/date/:date", d.Moods.MoodByDate)
	protected.GET("/moods/stats", d.Moods.MoodStats)
	protected.GET("/moods/stats/advanced", d.Moods.AdvancedMoodStats)
	protected.GET("/moods/stats/average", d.Moods.AverageMood)
	protected.GET("/moods/stats/trend", d.Moods.MoodTrend)
	protected.GET("/moods/stats/distribution", d.Moods.MoodDistribution)
	protected.GET("/moods/:id", d.Moods.GetMood)
	protected.PUT("/moods/:id", d.Moods.UpdateMood)
	protected.DELETE("/moods/:id", d.Moods.DeleteMood)

	return router
}
