package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
	"github.com/flwsb/pregnancy-nutrition-bot/services"
)

// DiaryController exposes the diary read-only over HTTP, next to the bot.
// No auth layer: the process is single-household and the API binds locally.
type DiaryController struct {
	Diary     *services.DiaryService
	Analyzer  *services.AnalyzerService
	Nutrition *services.NutritionService
	Profile   *services.ProfileService
}

func NewDiaryController(
	diary *services.DiaryService,
	analyzer *services.AnalyzerService,
	nutrition *services.NutritionService,
	profile *services.ProfileService,
) *DiaryController {
	return &DiaryController{Diary: diary, Analyzer: analyzer, Nutrition: nutrition, Profile: profile}
}

func (dc *DiaryController) GetDiary(c *gin.Context) {
	start, end := services.DayRange(time.Now())
	targets := dc.Profile.AdjustedDailyTargets(dc.Nutrition.DailyRequirements())
	dc.report(c, models.PeriodDay, start, end, targets)
}

func (dc *DiaryController) GetWeekly(c *gin.Context) {
	start, end := services.WeekRange(time.Now())
	targets := dc.Profile.AdjustedWeeklyTargets(dc.Nutrition.WeeklyRequirements())
	dc.report(c, models.PeriodWeek, start, end, targets)
}

func (dc *DiaryController) report(c *gin.Context, period models.Period, start, end time.Time, targets models.Targets) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	entries, err := dc.Diary.QueryByUserAndRange(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dc.Analyzer.Summarize(userID, period, entries, targets))
}
