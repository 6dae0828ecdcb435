package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farellandr/encuentro/config"
	"github.com/farellandr/encuentro/internal/handlers"
	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/jobs"
	"github.com/farellandr/encuentro/internal/logger"
	"github.com/farellandr/encuentro/internal/middleware"
	"github.com/farellandr/encuentro/internal/qr"
	"github.com/farellandr/encuentro/internal/repository"
	"github.com/farellandr/encuentro/internal/repository/postgres"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/farellandr/encuentro/internal/views"
	"github.com/farellandr/encuentro/pkg/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Services groups the application services built on one store.
type Services struct {
	Accounts   service.AccountService
	Membership service.MembershipService
	Payments   service.PaymentService
	Attendance service.AttendanceService
}

func NewServices(store repository.Store, cfg *config.Config, log *zap.Logger) *Services {
	return &Services{
		Accounts: service.NewAccountManager(store, log.Named("accounts"), cfg.Accounts.BcryptCost),
		Membership: service.NewMembershipManager(store, log.Named("membership"),
			service.WithMaxCodeAttempts(cfg.Groups.MaxCodeAttempts)),
		Payments:   service.NewPaymentLedger(store, log.Named("payments")),
		Attendance: service.NewAttendanceDesk(store, qr.NewEncoder(0), cfg.Server.BaseURL, log.Named("attendance")),
	}
}

func Start(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	svc := NewServices(postgres.NewStore(db), cfg, log)

	sessionStore, err := middleware.NewSessionStore(cfg.Session.Key, cfg.Session.Secure, cfg.Session.MaxAgeSeconds, log)
	if err != nil {
		return fmt.Errorf("failed to build session store: %w", err)
	}

	r, err := NewRouter(svc, sessionStore, cfg, log)
	if err != nil {
		return err
	}

	scheduler, err := jobs.NewScheduler(jobs.NewJobRunner(svc.Membership, svc.Attendance, log), cfg.Jobs, log)
	if err != nil {
		return fmt.Errorf("failed to schedule jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("base_url", cfg.Server.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the HTML site and the scanner API on one engine.
func NewRouter(svc *Services, sessionStore sessions.Store, cfg *config.Config, log *zap.Logger) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		validator.Register(v)
	}

	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	upload := helpers.DefaultReceiptUploadConfig
	upload.UploadBasePath = cfg.Upload.Dir
	upload.MaxSizeBytes = cfg.Upload.MaxSizeMB * 1024 * 1024

	h := &handlers.Handler{
		Accounts:   svc.Accounts,
		Membership: svc.Membership,
		Payments:   svc.Payments,
		Attendance: svc.Attendance,
		Log:        log.Named("http"),
		Upload:     upload,
		JWTSecret:  cfg.JWT.Secret,
		TokenTTL:   cfg.TokenTTL(),
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log.Named("access")), gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered", zap.String("path", c.Request.URL.Path), zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = upload.MaxSizeBytes + 1<<20

	setupRoutes(r, h, svc.Accounts, sessionStore, cfg, log)
	return r, nil
}

func setupRoutes(r *gin.Engine, h *handlers.Handler, users middleware.UserLoader, sessionStore sessions.Store, cfg *config.Config, log *zap.Logger) {
	r.GET("/healthz", handlers.Healthz)

	loadUser := middleware.LoadSessionUser(sessionStore, users, log)
	r.NoRoute(loadUser, h.NotFound)

	public := r.Group("/", loadUser)
	{
		public.GET("/", h.Index)
		public.GET("/news", h.News)
		public.GET("/total_attendance", h.TotalAttendance)
		public.GET("/register", h.RegisterPage)
		public.POST("/register", h.Register)
		public.GET("/login", h.LoginPage)
		public.POST("/login", h.Login)
		public.GET("/logout", h.Logout)
	}

	protected := r.Group("/", loadUser, middleware.RequireSignedIn())
	{
		protected.GET("/profile", h.Profile)
		protected.GET("/edit_profile", h.EditProfilePage)
		protected.POST("/edit_profile", h.EditProfile)

		protected.GET("/group_management", h.GroupManagement)
		protected.POST("/create_group", h.CreateGroup)
		protected.POST("/join_group", h.JoinGroup)
		protected.POST("/leave_group", h.LeaveGroup)
		protected.POST("/delete_group", h.DeleteGroup)

		protected.GET("/payment", h.PaymentInfo)
		protected.GET("/submit_payment", h.SubmitPaymentPage)
		protected.POST("/submit_payment", h.SubmitPayment)

		protected.GET("/my_qr_code", h.MyQRCode)
		protected.GET("/my_qr_code.png", h.MyQRCodeImage)
		protected.GET("/attendance/:id", h.AttendanceCheck)
	}

	api := r.Group("/api/v1", corsMiddleware(cfg.Server.CORSOrigins))
	{
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		api.POST("/login", h.APILogin)

		scanner := api.Group("/attendance", middleware.JWTAuthMiddleware(cfg.JWT.Secret, users, log))
		scanner.GET("/total", h.APITotalAttendance)
		scanner.POST("/:id", h.APICheckIn)
	}
}

// corsMiddleware lets scanner apps on other origins call the API with a
// bearer token. No origins configured means any origin.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AddAllowHeaders("Authorization")
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
