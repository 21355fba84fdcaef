package main

import (
	"fmt"
	"net/http"

	"github.com/meridianhq/payroll-backend-go/internal/config"
	appHTTP "github.com/meridianhq/payroll-backend-go/internal/handler/http"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/database"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/jwt"
	"github.com/meridianhq/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/meridianhq/payroll-backend-go/internal/service/payroll"
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

	submissionRepo := postgresql.NewSubmissionRepository(db)
	directory := postgresql.NewEmployeeDirectory(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := payrollService.NewCalculator()
	payrollSvc := payrollService.NewSubmissionService(submissionRepo, directory, calculator)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
