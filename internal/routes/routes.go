package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fadehouse/barbershop-api/internal/audit"
	"github.com/fadehouse/barbershop-api/internal/config"
	"github.com/fadehouse/barbershop-api/internal/handlers"
	infraRepo "github.com/fadehouse/barbershop-api/internal/infra/repository"
	"github.com/fadehouse/barbershop-api/internal/media"
	"github.com/fadehouse/barbershop-api/internal/middleware"
	"github.com/fadehouse/barbershop-api/internal/payments"
	ucBooking "github.com/fadehouse/barbershop-api/internal/usecase/booking"
)

const catalogCacheTTL = 60 * time.Second

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	mediaStore := media.NewStore(cfg)

	var gateway payments.Gateway
	if mp, err := payments.NewMercadoPago(cfg); err != nil {
		log.Warn("mercadopago disabled", zap.Error(err))
	} else if mp != nil {
		gateway = mp
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	checkAvailabilityUC := ucBooking.NewCheckAvailability(bookingRepo)
	listSlotsUC := ucBooking.NewListSlots(bookingRepo)
	updatePaymentUC := ucBooking.NewUpdatePaymentStatus(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)
	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listByUserUC := ucBooking.NewListBookingsByUser(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	catalogHandler := handlers.NewCatalogHandler(bookingRepo, log)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		checkAvailabilityUC,
		listSlotsUC,
		updatePaymentUC,
		log,
	)

	paymentHandler := handlers.NewPaymentHandler(gateway, bookingRepo, updatePaymentUC, log)

	authHandler := handlers.NewAuthHandler(db, cfg, log)

	staffBookingHandler := handlers.NewStaffBookingHandler(
		listByDateUC,
		listByUserUC,
		cancelBookingUC,
		log,
	)
	catalogAdminHandler := handlers.NewCatalogAdminHandler(db, mediaStore, log)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		catalog := api.Group("/")
		catalog.Use(middleware.CacheGET(rdb, catalogCacheTTL))
		{
			catalog.GET("/barbers", catalogHandler.ListBarbers)
			catalog.GET("/chairs", catalogHandler.ListChairs)
			catalog.GET("/services", catalogHandler.ListServices)
		}

		api.GET("/availability", bookingHandler.Availability)
		api.GET("/slots", bookingHandler.Slots)

		api.POST("/bookings", bookingHandler.Create)
		api.PATCH("/bookings/:id/payment", bookingHandler.UpdatePayment)
		api.POST("/bookings/:id/checkout", paymentHandler.Checkout)

		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// STAFF
		// ------------------------------
		staff := api.Group("/staff")
		staff.Use(middleware.AuthMiddleware(cfg))
		{
			staff.GET("/bookings", staffBookingHandler.ListByDate)
			staff.GET("/bookings/user/:userRef", staffBookingHandler.ListByUser)
			staff.PATCH("/bookings/:id/cancel", staffBookingHandler.Cancel)

			staff.POST("/barbers", catalogAdminHandler.CreateBarber)
			staff.PATCH("/barbers/:id", catalogAdminHandler.UpdateBarber)
			staff.POST("/barbers/:id/photo", catalogAdminHandler.UploadPhoto)

			staff.POST("/chairs", catalogAdminHandler.CreateChair)
			staff.PATCH("/chairs/:id", catalogAdminHandler.UpdateChair)

			staff.POST("/services", catalogAdminHandler.CreateService)
			staff.PATCH("/services/:id", catalogAdminHandler.UpdateService)

			staff.GET("/working-hours", workingHoursHandler.Get)
			staff.PUT("/working-hours", workingHoursHandler.Update)

			staff.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
