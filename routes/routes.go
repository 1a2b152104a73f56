package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/flwsb/pregnancy-nutrition-bot/controllers"
)

func SetupRouter(dc *controllers.DiaryController) *gin.Engine {
	r := gin.Default()

	r.GET("/health", controllers.Health)

	users := r.Group("/users")
	{
		users.GET("/:id/diary", dc.GetDiary)
		users.GET("/:id/weekly", dc.GetWeekly)
	}

	return r
}
