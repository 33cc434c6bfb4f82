package main

import (
	"fmt"
	"net/http"

	"github.com/chapi1234/gammoda-attendance-go/internal/config"
	"github.com/chapi1234/gammoda-attendance-go/internal/domain/attendance"
	appHTTP "github.com/chapi1234/gammoda-attendance-go/internal/handler/http"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/cron"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/database"
	"github.com/chapi1234/gammoda-attendance-go/internal/pkg/jwt"
	"github.com/chapi1234/gammoda-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/chapi1234/gammoda-attendance-go/internal/service/attendance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	recordRepo := postgresql.NewRecordRepository(db)
	aggregateRepo := postgresql.NewAggregateRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	latePolicy := attendance.NewLatePolicy(cfg.Attendance.WorkStart)
	loc := cfg.Location()

	service := attendanceService.NewAttendanceService(
		recordRepo,
		aggregateRepo,
		rosterRepo,
		latePolicy,
		loc,
	)

	recompute := attendanceService.NewRecomputeReconciler(recordRepo, aggregateRepo, rosterRepo)
	scheduler := cron.NewScheduler()
	cron.NewReconcileJobs(recompute, loc).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(service, loc)
	router := appHTTP.NewRouter(JWTService, attendanceHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
