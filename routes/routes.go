package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vnkhanh/skillplus-backend/controllers"
	"github.com/vnkhanh/skillplus-backend/middleware"
	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/utils"
	"github.com/vnkhanh/skillplus-backend/ws"
)

type Deps struct {
	Tokens          *utils.TokenManager
	Hub             *ws.Hub
	Upgrader        websocket.Upgrader
	RateLimiter     *middleware.RateLimiter
	LoginRateLimit  int
	LoginRateWindow time.Duration

	Auth    *controllers.AuthController
	Courses *controllers.CourseController
	Mentors *controllers.MentorController
	Health  *controllers.HealthController
}

func SetupRouter(r *gin.Engine, d Deps) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/health", d.Health.HealthCheck)
	r.GET("/ws/admin", ws.HandleAdminWebSocket(d.Hub, d.Tokens, d.Upgrader))

	api := r.Group("/api")
	api.Use(middleware.Session(d.Tokens))

	auth := api.Group("/auth")
	{
		auth.POST("/login", d.RateLimiter.Limit("login", d.LoginRateLimit, d.LoginRateWindow), d.Auth.Login)
	}

	api.POST("/users", d.Auth.Register)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	courses := api.Group("/courses")
	{
		courses.GET("", d.Courses.GetCourses)
		courses.GET("/:id", d.Courses.GetCourseDetail)
		courses.POST("", adminOnly, d.Courses.CreateCourse)
	}

	mentors := api.Group("/mentors")
	{
		mentors.GET("", d.Mentors.GetMentors)
		mentors.POST("", adminOnly, d.Mentors.CreateMentor)
		mentors.PATCH("/:id", adminOnly, d.Mentors.UpdateMentor)
		mentors.DELETE("/:id", adminOnly, d.Mentors.DeleteMentor)
	}

	return r
}
