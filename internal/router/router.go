package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/aaryandewangan/japlearn-sub001/internal/config"
	"github.com/aaryandewangan/japlearn-sub001/internal/handlers"
	"github.com/aaryandewangan/japlearn-sub001/internal/progression"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
}

func Setup(log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("japlearn_session", store))
	router.Use(PrincipalMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	engine := progression.NewEngine(log)

	authHandler := handlers.NewAuthHandler(log)
	quizHandler := handlers.NewQuizHandler(log, engine)
	userHandler := handlers.NewUserHandler(log, engine)
	adminHandler := handlers.NewAdminHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.POST("/auth/register", limiter, authHandler.Register)
		api.POST("/auth/login", limiter, authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// Public certificate verification: the code is the credential.
		api.GET("/certificates/verify/:code", quizHandler.VerifyCertificate)
		api.GET("/levels", userHandler.ListLevels)

		authorized := api.Group("/")
		authorized.Use(AuthRequired())
		{
			authorized.POST("/quiz/results", quizHandler.SubmitResult)
			authorized.GET("/quiz/history/:category", quizHandler.History)
			authorized.GET("/quiz/stats/:category", quizHandler.Stats)

			authorized.GET("/certificates/:category", quizHandler.CertificateStatus)
			authorized.POST("/certificates/:category/claim", quizHandler.ClaimCertificate)
			authorized.GET("/certificates", userHandler.ListCertificates)

			authorized.GET("/user/stats", userHandler.GetStats)
			authorized.GET("/achievements", userHandler.ListAchievements)
			authorized.POST("/lessons/progress", userHandler.UpdateLessonProgress)
		}

		admin := api.Group("/admin")
		admin.Use(AuthRequired(), AdminRequired())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users/:id/xp", adminHandler.AdjustXP)
		}
	}

	return router
}
