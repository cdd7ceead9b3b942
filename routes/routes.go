package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"altailand-backend/controllers"
	"altailand-backend/middleware"
	"altailand-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires middleware and all public and admin endpoints.
func SetupRouter(
	auth *services.AuthService,
	ac *controllers.AuthController,
	pc *controllers.PlotController,
	rc *controllers.RequestController,
	qc *controllers.QuizController,
	cc *controllers.ContactController,
	adc *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	r.Static("/images", services.UploadFolder())
	r.Static("/uploads", services.DocumentFolder())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		plots := api.Group("/plots")
		{
			// fixed paths must come before /:id
			plots.GET("", pc.GetPlots)
			plots.GET("/count", pc.CountPlots)
			plots.GET("/regions", pc.GetRegions)
			plots.GET("/locations", pc.GetLocations)
			plots.GET("/categories", pc.GetCategories)
			plots.GET("/:id", pc.GetPlot)
		}

		quiz := api.Group("/quiz")
		{
			quiz.GET("/questions", qc.GetQuestions)
			quiz.POST("/request", qc.SubmitQuiz)
		}

		api.GET("/contacts", cc.GetContacts)
		api.POST("/requests", rc.CreateRequest)

		api.POST("/admin/login", ac.Login)
		// The public frontend fires page-view pings here, so no auth.
		api.POST("/admin/track-visit", adc.TrackVisit)

		admin := api.Group("/admin", middleware.AdminRequired(auth))
		{
			admin.GET("/me", ac.Me)
			admin.GET("/stats", adc.GetStats)
			admin.GET("/stats/visitors", adc.GetVisitorStats)

			adminPlots := admin.Group("/plots")
			{
				adminPlots.GET("", pc.AdminGetPlots)
				adminPlots.GET("/count", pc.AdminCountPlots)
				adminPlots.POST("", pc.CreatePlot)
				adminPlots.GET("/:id", pc.AdminGetPlot)
				adminPlots.PUT("/:id", pc.UpdatePlot)
				adminPlots.PATCH("/:id/visibility", pc.ToggleVisibility)
				adminPlots.DELETE("/:id", pc.DeletePlot)

				adminPlots.POST("/:id/images", pc.UploadImage)
				adminPlots.PUT("/:id/images/reorder", pc.ReorderImages)
				adminPlots.PUT("/:id/images/:imageId/main", pc.SetMainImage)
				adminPlots.DELETE("/:id/images/:imageId", pc.DeleteImage)
			}

			adminRequests := admin.Group("/requests")
			{
				adminRequests.GET("", rc.GetRequests)
				adminRequests.GET("/:id", rc.GetRequest)
				adminRequests.PUT("/:id", rc.UpdateRequest)
			}

			adminQuiz := admin.Group("/quiz/questions")
			{
				adminQuiz.POST("", qc.CreateQuestion)
				adminQuiz.PUT("/:id", qc.UpdateQuestion)
				adminQuiz.DELETE("/:id", qc.DeleteQuestion)
			}

			admin.PUT("/contacts", cc.UpdateContacts)

			admin.POST("/upload-document", adc.UploadDocument)
			admin.POST("/upload-documents", adc.UploadDocuments)
			admin.GET("/download/*filepath", adc.DownloadDocument)
		}
	}

	return r
}
