package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lapangankita/field-booking/internal/audit"
	"github.com/lapangankita/field-booking/internal/cache"
	"github.com/lapangankita/field-booking/internal/config"
	"github.com/lapangankita/field-booking/internal/handlers"
	infraRepo "github.com/lapangankita/field-booking/internal/infra/repository"
	"github.com/lapangankita/field-booking/internal/middleware"
	"github.com/lapangankita/field-booking/internal/payment"
	"github.com/lapangankita/field-booking/internal/storage"
	"github.com/lapangankita/field-booking/internal/tariff"
	ucBooking "github.com/lapangankita/field-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	schedule := tariff.Load(cfg.TariffFile)
	if schedule.IsEmpty() {
		log.Println("warning: tariff schedule is empty, no slot is bookable")
	}

	slotCache := cache.NewSlotCache(cfg.RedisAddr)

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	payments, err := payment.New(cfg.MercadoPagoToken)
	if err != nil {
		log.Fatalf("failed to init payment client: %v", err)
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// BOOKING USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		schedule,
		auditDispatcher,
	)

	quoteUC := ucBooking.NewQuote(bookingRepo, schedule)

	approveBookingUC := ucBooking.NewApproveBooking(bookingRepo, auditDispatcher)
	rejectBookingUC := ucBooking.NewRejectBooking(bookingRepo, auditDispatcher)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)

	listMyBookingsUC := ucBooking.NewListMyBookings(bookingRepo)
	listByPeriodUC := ucBooking.NewListBookingsByPeriod(bookingRepo)

	uploadProofUC := ucBooking.NewUploadProof(bookingRepo, auditDispatcher)

	var payBookingUC *ucBooking.PayBooking
	if payments != nil {
		payBookingUC = ucBooking.NewPayBooking(bookingRepo, payments, auditDispatcher)
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, quoteUC, slotCache)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		uploadProofUC,
		listMyBookingsUC,
		payBookingUC,
		store,
		slotCache,
	)

	adminBookingHandler := handlers.NewAdminBookingHandler(
		createBookingUC,
		approveBookingUC,
		rejectBookingUC,
		completeBookingUC,
		cancelBookingUC,
		listByPeriodUC,
		slotCache,
	)

	fieldHandler := handlers.NewFieldHandler(db, store)
	userAdminHandler := handlers.NewUserAdminHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/fields", publicHandler.ListFields)
			publicAPI.GET("/fields/:id", publicHandler.GetField)
			publicAPI.GET("/fields/:id/booked", publicHandler.BookedSlots)
			publicAPI.GET("/price", publicHandler.Quote)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/me/bookings/:id/proof", bookingHandler.UploadProof)
			secured.POST("/me/bookings/:id/pay", bookingHandler.Pay)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/bookings", adminBookingHandler.ListByDate)
				admin.GET("/bookings/month", adminBookingHandler.ListByMonth)
				admin.POST("/bookings", adminBookingHandler.CreateWalkIn)
				admin.PATCH("/bookings/:id/approve", adminBookingHandler.Approve)
				admin.PATCH("/bookings/:id/reject", adminBookingHandler.Reject)
				admin.PATCH("/bookings/:id/complete", adminBookingHandler.Complete)
				admin.PATCH("/bookings/:id/cancel", adminBookingHandler.Cancel)

				admin.POST("/fields", fieldHandler.Create)
				admin.PATCH("/fields/:id", fieldHandler.Update)
				admin.POST("/fields/:id/image", fieldHandler.UpdateImage)
				admin.DELETE("/fields/:id", fieldHandler.Delete)

				admin.GET("/users", userAdminHandler.List)
				admin.DELETE("/users/:id", userAdminHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
