package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shala-api/internal/audit"
	"github.com/BruksfildServices01/shala-api/internal/cache"
	"github.com/BruksfildServices01/shala-api/internal/config"
	"github.com/BruksfildServices01/shala-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/shala-api/internal/infra/repository"
	"github.com/BruksfildServices01/shala-api/internal/middleware"
	ucBooking "github.com/BruksfildServices01/shala-api/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/shala-api/internal/usecase/catalog"
	ucHealthForm "github.com/BruksfildServices01/shala-api/internal/usecase/healthform"
	ucProgram "github.com/BruksfildServices01/shala-api/internal/usecase/program"
	"github.com/BruksfildServices01/shala-api/internal/usecase/registration"
	ucStudent "github.com/BruksfildServices01/shala-api/internal/usecase/student"
	ucTeacher "github.com/BruksfildServices01/shala-api/internal/usecase/teacher"
	ucVenue "github.com/BruksfildServices01/shala-api/internal/usecase/venue"
	"github.com/BruksfildServices01/shala-api/internal/validators"
)

// RegisterRoutes wires the gorm repositories into the use cases and mounts
// every endpoint. The caller owns auditDispatcher and closes it on shutdown.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	catalogCache cache.Cache,
	auditLogger audit.Store,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	programRepo := infraRepo.NewProgramGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)
	teacherRepo := infraRepo.NewTeacherGormRepository(db)
	studentRepo := infraRepo.NewStudentGormRepository(db)
	venueRepo := infraRepo.NewVenueGormRepository(db)
	healthFormRepo := infraRepo.NewHealthFormGormRepository(db)

	var verifyEmail validators.EmailDomainCheck
	if cfg.VerifyEmailDomain {
		verifyEmail = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES
	// ======================================================
	bookingDeps := ucBooking.Deps{Repo: bookingRepo, Cache: catalogCache, Audit: auditDispatcher, Log: log}
	programDeps := ucProgram.Deps{Repo: programRepo, Cache: catalogCache, Audit: auditDispatcher, Log: log}
	catalogDeps := ucCatalog.Deps{Repo: catalogRepo, Cache: catalogCache, TTL: cfg.CatalogCacheTTL, Log: log}
	studentDeps := ucStudent.Deps{Repo: studentRepo, Audit: auditDispatcher, Log: log}
	venueDeps := ucVenue.Deps{Repo: venueRepo, Cache: catalogCache, Audit: auditDispatcher, Log: log}
	healthFormDeps := ucHealthForm.Deps{Repo: healthFormRepo, Audit: auditDispatcher, Log: log}

	ensureTeacherUC := ucTeacher.NewEnsureTeacher(teacherRepo, log, cfg.DefaultTimezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		ucCatalog.NewListPrograms(catalogDeps),
		ucCatalog.NewGetProgram(catalogDeps),
		registration.NewRegister(bookingRepo, catalogCache, auditDispatcher, log, verifyEmail),
		registration.NewGetBookingDetails(bookingRepo, log),
		ucBooking.NewRequestCancellation(bookingDeps),
	)

	meHandler := handlers.NewMeHandler(
		ucTeacher.NewGetTeacher(teacherRepo, log),
		ucProgram.NewListTemplates(programDeps),
	)

	programHandler := handlers.NewProgramHandler(
		ucProgram.NewListPrograms(programDeps),
		ucProgram.NewGetProgram(programDeps),
		ucProgram.NewCreateProgram(programDeps, teacherRepo),
		ucProgram.NewUpdateProgramStatus(programDeps),
		ucProgram.NewDuplicateProgram(programDeps),
		ucProgram.NewDeleteProgram(programDeps),
		ucProgram.NewSaveAsTemplate(programDeps),
	)

	bookingHandler := handlers.NewBookingHandler(
		ucBooking.NewGetBooking(bookingDeps),
		ucBooking.NewListProgramBookings(bookingDeps),
		ucBooking.NewApproveCancellation(bookingDeps),
		ucBooking.NewDeclineCancellation(bookingDeps),
		ucBooking.NewOfferWaitlistSpot(bookingDeps),
		ucBooking.NewUpdatePaymentStatus(bookingDeps),
	)

	studentHandler := handlers.NewStudentHandler(
		ucStudent.NewListStudents(studentDeps),
		ucStudent.NewGetStudent(studentDeps),
		ucStudent.NewListTags(studentDeps),
		ucStudent.NewUpdateStudent(studentDeps),
		ucStudent.NewUpdateTags(studentDeps),
		ucStudent.NewUpdateNotes(studentDeps),
	)

	venueHandler := handlers.NewVenueHandler(
		ucVenue.NewListVenues(venueDeps),
		ucVenue.NewCreateVenue(venueDeps),
		ucVenue.NewUpdateVenue(venueDeps),
		ucVenue.NewDeleteVenue(venueDeps),
	)

	healthFormHandler := handlers.NewHealthFormHandler(
		ucHealthForm.NewListForProgram(healthFormDeps),
		ucHealthForm.NewReview(healthFormDeps),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, log)

	// ======================================================
	// API (JSON)
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/teachers/:teacherSlug/programs", publicHandler.ListPrograms)
			publicAPI.GET("/teachers/:teacherSlug/programs/:programSlug", publicHandler.GetProgram)
			publicAPI.POST("/registrations", publicHandler.Register)
			publicAPI.GET("/bookings/:bookingId", publicHandler.GetBooking)
			publicAPI.POST("/bookings/:bookingId/cancellation", publicHandler.RequestCancellation)
		}

		// ------------------------------
		// DASHBOARD
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg, ensureTeacherUC))
		{
			secured.GET("", meHandler.GetMe)
			secured.GET("/templates", meHandler.Templates)

			secured.GET("/programs", programHandler.List)
			secured.POST("/programs", programHandler.Create)
			secured.GET("/programs/:id", programHandler.Get)
			secured.DELETE("/programs/:id", programHandler.Delete)
			secured.PATCH("/programs/:id/status", programHandler.UpdateStatus)
			secured.POST("/programs/:id/duplicate", programHandler.Duplicate)
			secured.POST("/programs/:id/template", programHandler.SaveAsTemplate)
			secured.GET("/programs/:id/bookings", bookingHandler.ListForProgram)
			secured.GET("/programs/:id/health-forms", healthFormHandler.ListForProgram)

			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.POST("/bookings/:id/cancellation/approve", bookingHandler.ApproveCancellation)
			secured.POST("/bookings/:id/cancellation/decline", bookingHandler.DeclineCancellation)
			secured.POST("/bookings/:id/waitlist-offer", bookingHandler.OfferWaitlistSpot)
			secured.PATCH("/bookings/:id/payment-status", bookingHandler.UpdatePaymentStatus)

			secured.POST("/health-forms/review", healthFormHandler.ReviewMany)
			secured.POST("/health-forms/:id/review", healthFormHandler.ReviewOne)

			secured.GET("/venues", venueHandler.List)
			secured.POST("/venues", venueHandler.Create)
			secured.PATCH("/venues/:id", venueHandler.Update)
			secured.DELETE("/venues/:id", venueHandler.Delete)

			secured.GET("/students", studentHandler.List)
			secured.GET("/students/tags", studentHandler.Tags)
			secured.GET("/students/:id", studentHandler.Get)
			secured.PATCH("/students/:id", studentHandler.Update)
			secured.PUT("/students/:id/tags", studentHandler.UpdateTags)
			secured.PUT("/students/:id/notes", studentHandler.UpdateNotes)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
