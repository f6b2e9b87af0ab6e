package api

import (
	"github.com/examace/examace/internal/auth"
	"github.com/examace/examace/internal/catalog"
	"github.com/examace/examace/internal/db"
	"github.com/examace/examace/internal/services"
)

type Server struct {
	DB             *db.DB
	Catalog        *catalog.Catalog
	Tokens         *auth.TokenManager
	AuthService    services.AuthService
	ExamService    services.ExamService
	SessionService services.SessionService
	AttemptService services.AttemptService
	StatsService   services.StatsService
}
