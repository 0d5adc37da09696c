package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmrathi94/VivahSetu/api/controllers"
	"github.com/pmrathi94/VivahSetu/api/middleware"
	"github.com/pmrathi94/VivahSetu/internal/analytics"
	"github.com/pmrathi94/VivahSetu/internal/audit"
	"github.com/pmrathi94/VivahSetu/internal/auth"
	"github.com/pmrathi94/VivahSetu/internal/budget"
	"github.com/pmrathi94/VivahSetu/internal/chat"
	"github.com/pmrathi94/VivahSetu/internal/functions"
	"github.com/pmrathi94/VivahSetu/internal/guests"
	"github.com/pmrathi94/VivahSetu/internal/media"
	"github.com/pmrathi94/VivahSetu/internal/memberships"
	"github.com/pmrathi94/VivahSetu/internal/notifications"
	"github.com/pmrathi94/VivahSetu/internal/packing"
	"github.com/pmrathi94/VivahSetu/internal/timeline"
	"github.com/pmrathi94/VivahSetu/internal/users"
	"github.com/pmrathi94/VivahSetu/internal/vendors"
	"github.com/pmrathi94/VivahSetu/internal/weddings"
	"github.com/pmrathi94/VivahSetu/pkg/auth/session"
	"github.com/pmrathi94/VivahSetu/pkg/config"
	"github.com/pmrathi94/VivahSetu/pkg/db"
	"github.com/pmrathi94/VivahSetu/pkg/db/models"
	"github.com/pmrathi94/VivahSetu/pkg/enums"
	"github.com/pmrathi94/VivahSetu/pkg/logger"
	"github.com/pmrathi94/VivahSetu/pkg/ratelimit"
	"github.com/pmrathi94/VivahSetu/pkg/redis"
)

// WeddingLookup is the read surface the access guard needs; the weddings
// repository satisfies it.
type WeddingLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wedding, error)
}

// Services bundles every domain service the router serves. Keeping them in
// one struct saves main from a thirty-argument constructor.
type Services struct {
	Auth          auth.Service
	Users         users.Service
	Weddings      weddings.Service
	Memberships   memberships.Service
	Guests        guests.Service
	Budget        budget.Service
	Vendors       vendors.Service
	Functions     functions.Service
	Chat          chat.Service
	Media         media.Service
	Packing       packing.Service
	Notifications notifications.Service
	Timeline      timeline.Service
	Analytics     analytics.Service
	Audit         audit.Service
}

// NewRouter assembles the HTTP surface: health probes, the public auth
// endpoints, and the authenticated API with the per-wedding access guard.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	sessions session.AccessSessionChecker,
	limiter ratelimit.Limiter,
	weddingLookup WeddingLookup,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)
	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRateLimit.OTPWindow,
		cfg.AuthRateLimit.OTPIPLimit,
		cfg.AuthRateLimit.OTPEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, limiter, logg)).Post("/signup", controllers.AuthSignup(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(otpPolicy, limiter, logg)).Post("/forgot-password", controllers.AuthForgotPassword(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(otpPolicy, limiter, logg)).Post("/verify-otp", controllers.AuthVerifyOTP(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(otpPolicy, limiter, logg)).Post("/reset-password", controllers.AuthResetPassword(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RateLimit(cfg.RateLimit, limiter, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", controllers.GetMe(svcs.Users, logg))
			r.Put("/me", controllers.UpdateMe(svcs.Users, logg))
		})

		r.Route("/weddings", func(r chi.Router) {
			r.Post("/", controllers.CreateWedding(svcs.Weddings, logg))
			r.Get("/", controllers.ListWeddings(svcs.Weddings, logg))

			r.Route("/{weddingID}", func(r chi.Router) {
				r.Use(middleware.WeddingAccess(weddingLookup, svcs.Memberships, logg))
				if cfg.FeatureFlags.AuditLogs {
					r.Use(middleware.Audit(svcs.Audit, logg))
				}

				adminOnly := middleware.RequireWeddingRoles(logg, enums.WeddingRoleMainAdmin, enums.WeddingRoleFamilyAdmin)
				mainAdminOnly := middleware.RequireWeddingRoles(logg, enums.WeddingRoleMainAdmin)

				r.Get("/", controllers.GetWedding(svcs.Weddings, logg))
				r.With(adminOnly).Put("/", controllers.UpdateWedding(svcs.Weddings, logg))
				r.With(mainAdminOnly).Put("/settings", controllers.UpdateWeddingSettings(svcs.Weddings, logg))
				r.With(mainAdminOnly).Delete("/", controllers.ArchiveWedding(svcs.Weddings, logg))

				r.Route("/members", func(r chi.Router) {
					r.Get("/", controllers.ListWeddingMembers(svcs.Memberships, logg))
					r.With(adminOnly).Post("/", controllers.AssignWeddingRole(svcs.Memberships, logg))
					r.With(adminOnly).Delete("/{userID}", controllers.RevokeWeddingRole(svcs.Memberships, logg))
				})

				r.Route("/guests", func(r chi.Router) {
					r.Get("/", controllers.ListGuests(svcs.Guests, logg))
					r.With(adminOnly).Post("/", controllers.CreateGuest(svcs.Guests, logg))
					r.Get("/{guestID}", controllers.GetGuest(svcs.Guests, logg))
					r.With(adminOnly).Put("/{guestID}", controllers.UpdateGuest(svcs.Guests, logg))
					r.Put("/{guestID}/rsvp", controllers.UpdateGuestRSVP(svcs.Guests, logg))
					r.With(adminOnly).Delete("/{guestID}", controllers.DeleteGuest(svcs.Guests, logg))
				})

				r.Route("/budget", func(r chi.Router) {
					r.Use(adminOnly)
					r.Get("/", controllers.ListExpenses(svcs.Budget, logg))
					r.Post("/", controllers.CreateExpense(svcs.Budget, logg))
					r.Get("/summary", controllers.BudgetSummary(svcs.Budget, logg))
					r.Get("/{expenseID}", controllers.GetExpense(svcs.Budget, logg))
					r.Put("/{expenseID}", controllers.UpdateExpense(svcs.Budget, logg))
					r.Delete("/{expenseID}", controllers.DeleteExpense(svcs.Budget, logg))
				})

				vendorWrite := middleware.RequireWeddingRoles(logg,
					enums.WeddingRoleMainAdmin, enums.WeddingRoleFamilyAdmin, enums.WeddingRoleVendorManager)
				r.Route("/vendors", func(r chi.Router) {
					r.Get("/", controllers.ListVendors(svcs.Vendors, logg))
					r.Get("/by-location", controllers.VendorsByLocation(svcs.Vendors, logg))
					r.With(vendorWrite).Post("/", controllers.CreateVendor(svcs.Vendors, logg))
					r.Get("/{vendorID}", controllers.GetVendor(svcs.Vendors, logg))
					r.With(vendorWrite).Put("/{vendorID}", controllers.UpdateVendor(svcs.Vendors, logg))
					r.With(vendorWrite).Post("/{vendorID}/rate", controllers.RateVendor(svcs.Vendors, logg))
					r.With(vendorWrite).Post("/{vendorID}/assign", controllers.AssignVendor(svcs.Vendors, logg))
					r.With(vendorWrite).Delete("/{vendorID}", controllers.DeleteVendor(svcs.Vendors, logg))
				})

				r.Route("/functions", func(r chi.Router) {
					r.Get("/", controllers.ListFunctions(svcs.Functions, logg))
					r.With(adminOnly).Post("/", controllers.CreateFunction(svcs.Functions, logg))
					r.Get("/{functionID}", controllers.GetFunction(svcs.Functions, logg))
					r.With(adminOnly).Put("/{functionID}", controllers.UpdateFunction(svcs.Functions, logg))
					r.With(adminOnly).Put("/{functionID}/status", controllers.UpdateFunctionStatus(svcs.Functions, logg))
					r.With(adminOnly).Delete("/{functionID}", controllers.DeleteFunction(svcs.Functions, logg))
				})

				r.Route("/chat", func(r chi.Router) {
					r.Get("/", controllers.ListChatMessages(svcs.Chat, logg))
					r.Post("/", controllers.SendChatMessage(svcs.Chat, logg))
					r.Put("/{messageID}", controllers.EditChatMessage(svcs.Chat, logg))
					r.Delete("/{messageID}", controllers.DeleteChatMessage(svcs.Chat, logg))
				})

				r.Route("/media", func(r chi.Router) {
					r.Get("/", controllers.ListMedia(svcs.Media, logg))
					r.Post("/", controllers.UploadMedia(svcs.Media, logg))
					r.Get("/{mediaID}", controllers.GetMedia(svcs.Media, logg))
					r.Post("/{mediaID}/versions", controllers.UploadMediaVersion(svcs.Media, logg))
					r.Get("/{mediaID}/versions", controllers.ListMediaVersions(svcs.Media, logg))
					r.With(adminOnly).Post("/{mediaID}/rollback", controllers.RollbackMedia(svcs.Media, logg))
					r.With(adminOnly).Put("/{mediaID}/access", controllers.UpdateMediaAccess(svcs.Media, logg))
				})

				r.Route("/packing-lists", func(r chi.Router) {
					r.Get("/", controllers.ListPackingLists(svcs.Packing, logg))
					r.Post("/", controllers.CreatePackingList(svcs.Packing, logg))
					r.Get("/{listID}", controllers.GetPackingList(svcs.Packing, logg))
					r.Put("/{listID}", controllers.UpdatePackingList(svcs.Packing, logg))
					r.Delete("/{listID}", controllers.DeletePackingList(svcs.Packing, logg))
					r.Route("/{listID}/items", func(r chi.Router) {
						r.Post("/", controllers.AddPackingItem(svcs.Packing, logg))
						r.Put("/{itemID}", controllers.UpdatePackingItem(svcs.Packing, logg))
						r.Put("/{itemID}/toggle", controllers.TogglePackingItem(svcs.Packing, logg))
						r.Delete("/{itemID}", controllers.DeletePackingItem(svcs.Packing, logg))
					})
				})

				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
					r.Post("/{notificationID}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
					r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
				})

				r.With(adminOnly).Post("/emergency-alerts", controllers.SendEmergencyAlert(svcs.Notifications, logg))

				r.Get("/timeline", controllers.GetTimeline(svcs.Timeline, logg))

				r.Route("/analytics", func(r chi.Router) {
					r.Get("/budget", controllers.BudgetAnalytics(svcs.Analytics, logg))
					r.Get("/functions", controllers.FunctionsAnalytics(svcs.Analytics, logg))
					r.Get("/rsvp", controllers.RSVPAnalytics(svcs.Analytics, logg))
					r.Get("/packing", controllers.PackingAnalytics(svcs.Analytics, logg))
					r.Get("/dashboard", controllers.DashboardAnalytics(svcs.Analytics, logg))
				})

				r.With(adminOnly).Get("/audit-logs", controllers.ListAuditLogs(svcs.Audit, logg))
			})
		})
	})

	return r
}
