package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/auth"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/services/health"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/users"
)

// Rate limit groups.
const (
	GroupRegister      = "REGISTER"
	GroupLogin         = "LOGIN"
	GroupRefresh       = "REFRESH"
	GroupMe            = "ME"
	GroupProfileUpdate = "PROFILE_UPDATE"
	GroupPassword      = "PASSWORD"
	GroupAccountDelete = "ACCOUNT_DELETE"
)

// DefaultRateLimits are the per-minute budgets for each group.
var DefaultRateLimits = map[string]middleware.RateLimitRule{
	GroupRegister:      {PerMinute: 5},
	GroupLogin:         {PerMinute: 5},
	GroupRefresh:       {PerMinute: 10},
	GroupMe:            {PerMinute: 100},
	GroupProfileUpdate: {PerMinute: 10},
	GroupPassword:      {PerMinute: 5},
	GroupAccountDelete: {PerMinute: 3},
}

var routeGroups = map[string]string{
	"POST /api/auth/register":   GroupRegister,
	"POST /api/auth/login":      GroupLogin,
	"POST /api/auth/refresh":    GroupRefresh,
	"GET /api/auth/me":          GroupMe,
	"GET /api/users/profile":    GroupMe,
	"PUT /api/users/profile":    GroupProfileUpdate,
	"PUT /api/users/password":   GroupPassword,
	"DELETE /api/users/account": GroupAccountDelete,
}

// RouterDeps captures handlers and services needed to build the router.
type RouterDeps struct {
	Config          config.Config
	Verifier        middleware.TokenVerifier
	ActiveUsers     middleware.ActiveUserChecker
	AuthHandler     *auth.Handler
	UsersHandler    *users.Handler
	ResumesHandler  *resumes.Handler
	AnalysisHandler *analyses.Handler
	HealthHandler   *health.Handler
	RateLimits      map[string]middleware.RateLimitRule
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = deps.Config.MaxUploadBytes() + (1 << 20)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "route not found", nil)
	})

	rules := deps.RateLimits
	if rules == nil {
		rules = DefaultRateLimits
	}
	limit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules:    rules,
		GroupFor: RateLimitGroup,
		Limiter:  deps.RateLimiter,
	})
	requireAuth := middleware.Auth(deps.Verifier, deps.ActiveUsers)

	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(r)
	}
	if deps.Config.MetricsEnabled {
		r.GET("/metrics", metrics.Handler())
	}

	api := r.Group("/api")

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublicRoutes(api.Group("/auth", limit))
		deps.AuthHandler.RegisterProtectedRoutes(api.Group("/auth", requireAuth, limit))
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api.Group("/users", requireAuth, limit))
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api.Group("/resumes", requireAuth, limit))
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api.Group("/analysis", requireAuth, limit))
	}

	return r
}

// RateLimitGroup maps the matched route onto its rate limit group.
func RateLimitGroup(c *gin.Context) string {
	return routeGroups[c.Request.Method+" "+c.FullPath()]
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
