package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tnmai/diemdanh_backend/internal/civildate"
	"github.com/tnmai/diemdanh_backend/internal/config"
	"github.com/tnmai/diemdanh_backend/internal/controllers"
	"github.com/tnmai/diemdanh_backend/internal/metrics"
	"github.com/tnmai/diemdanh_backend/internal/store"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, codec *civildate.Codec, log *zap.Logger) {
	students := store.NewStudentStore(db)
	records := store.NewAttendanceStore(db)
	settings := store.NewSettingStore(db, cfg.DefaultDailyFee)

	sugar := log.Sugar()
	studentCtrl := &controllers.StudentController{Students: students, Attendance: records, Codec: codec, Log: sugar}
	attendanceCtrl := &controllers.AttendanceController{
		Students:   students,
		Attendance: records,
		Settings:   settings,
		Codec:      codec,
		Log:        sugar,
	}
	settingsCtrl := &controllers.SettingsController{Settings: settings, Log: sugar}
	healthCtrl := &controllers.HealthController{DB: db}

	r.GET("/healthz", healthCtrl.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/students", studentCtrl.List)
		api.POST("/students", studentCtrl.Create)
		api.GET("/students/:id", studentCtrl.Get)
		api.PUT("/students/:id", studentCtrl.Update)
		api.DELETE("/students/:id", studentCtrl.Delete)

		api.GET("/attendance", attendanceCtrl.List)
		api.POST("/attendance", attendanceCtrl.Mark)

		api.GET("/settings", settingsCtrl.List)
		api.POST("/settings", settingsCtrl.Upsert)
	}
}
