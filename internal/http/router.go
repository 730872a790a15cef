// Package http wires the quizforge HTTP surface: the credential endpoints,
// the authenticated quiz and account endpoints, health probes and swagger.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/httpx"
	"github.com/quizforge/quizforge/pkg/jwtx"
	"github.com/quizforge/quizforge/pkg/slogx"

	_ "github.com/quizforge/quizforge/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	accessVerifier jwtx.Verifier
	buildVersion   string
	startTime      time.Time
	logger         *slog.Logger
	cookies        CookieConfig

	store store.Store

	RegistrationService *service.RegistrationService
	TokenService        *service.TokenService
	UserService         *service.UserService
	ResetService        *service.PasswordResetService
	QuizService         *service.QuizService
}

func NewRouter(
	accessVerifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	cookies CookieConfig,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:            http.NewServeMux(),
		accessVerifier: accessVerifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		cookies:        cookies,
		logger:         logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCredentials()
	r.registerAccount()
	r.registerQuizzes()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			QuizForge API
//	@version		0.1.0
//	@description	Quiz platform backend: email-verified registration, JWT sessions with refresh rotation, quiz authoring, attempts and leaderboards.
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}". Browsers use the accessToken cookie instead.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCredentials() {
	registerHandler := &RegisterHandler{
		RegistrationService: r.RegistrationService,
		Cookies:             r.cookies,
	}
	loginHandler := &LoginHandler{UserService: r.UserService, Cookies: r.cookies}
	refreshHandler := &RefreshHandler{TokenService: r.TokenService, Cookies: r.cookies}
	passwordHandler := &PasswordHandler{
		ResetService: r.ResetService,
		UserService:  r.UserService,
		Cookies:      r.cookies,
	}

	// Credential endpoints get strict per-IP limits: they are the brute
	// force targets.
	r.Mux.Handle("POST /api/v1/users/register",
		httpx.Chain(http.HandlerFunc(registerHandler.HandleBegin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/users/verify-otp",
		httpx.Chain(http.HandlerFunc(registerHandler.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/users/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/users/refresh-token",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/users/forgot-password",
		httpx.Chain(http.HandlerFunc(passwordHandler.HandleForgot),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/users/reset-password/{token}",
		httpx.Chain(http.HandlerFunc(passwordHandler.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAccount() {
	usersHandler := &UsersHandler{UserService: r.UserService, QuizService: r.QuizService}
	logoutHandler := &LogoutHandler{UserService: r.UserService, Cookies: r.cookies}
	passwordHandler := &PasswordHandler{
		ResetService: r.ResetService,
		UserService:  r.UserService,
		Cookies:      r.cookies,
	}

	secured := func(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			r.AuthGate,
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /api/v1/users/logout",
		secured(logoutHandler, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/v1/users/change-password",
		secured(http.HandlerFunc(passwordHandler.HandleChange), httpx.StrictLimit))
	r.Mux.Handle("GET /api/v1/users/current-user",
		secured(http.HandlerFunc(usersHandler.HandleCurrentUser), httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/v1/users/update-account",
		secured(http.HandlerFunc(usersHandler.HandleUpdateAccount), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/users/history",
		secured(http.HandlerFunc(usersHandler.HandleHistory), httpx.LenientLimit))
}

func (r *Router) registerQuizzes() {
	quizzesHandler := &QuizzesHandler{QuizService: r.QuizService}
	attemptsHandler := &AttemptsHandler{QuizService: r.QuizService}

	secured := func(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			r.AuthGate,
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /api/v1/quizzes/create",
		secured(quizzesHandler.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/quizzes/my-quizzes",
		secured(quizzesHandler.HandleMyQuizzes, httpx.LenientLimit))
	r.Mux.Handle("GET /api/v1/quizzes/edit/{quizID}",
		secured(quizzesHandler.HandleEdit, httpx.LenientLimit))
	r.Mux.Handle("GET /api/v1/quizzes/user/attempts",
		secured(attemptsHandler.HandleUserAttempts, httpx.LenientLimit))
	r.Mux.Handle("GET /api/v1/quizzes/attempt/{attemptID}/results",
		secured(attemptsHandler.HandleResults, httpx.LenientLimit))
	r.Mux.Handle("GET /api/v1/quizzes/{quizID}",
		secured(quizzesHandler.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /api/v1/quizzes/{quizID}/update",
		secured(quizzesHandler.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/quizzes/{quizID}/delete",
		secured(quizzesHandler.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/v1/quizzes/{quizID}/attempt",
		secured(attemptsHandler.HandleSubmit, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/quizzes/{quizID}/leaderboard",
		secured(attemptsHandler.HandleLeaderboard, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
