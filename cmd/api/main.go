package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"skillflip/internal/config"
	"skillflip/internal/database"
	"skillflip/internal/middleware"
	"skillflip/internal/modules/admin"
	"skillflip/internal/modules/availability"
	"skillflip/internal/modules/booking"
	"skillflip/internal/modules/catalog"
	"skillflip/internal/modules/event"
	"skillflip/internal/modules/pricing"
	"skillflip/internal/modules/review"
	jwtsvc "skillflip/internal/pkg/jwt"
	"skillflip/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	skillRepo := repository.NewSkillRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	eventRepo := repository.NewEventRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	userRepo := repository.NewUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	pricingService := pricing.NewService()
	pricingHandler := pricing.NewHandler(pricingService)

	catalogService := catalog.NewService(skillRepo, categoryRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	availabilityService := availability.NewService(availabilityRepo, bookingRepo, time.Now)
	availabilityHandler := availability.NewHandler(availabilityService)

	bookingService := booking.NewService(bookingRepo, skillRepo, availabilityService, pricingService, nil, time.Now)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo, bookingRepo)
	reviewHandler := review.NewHandler(reviewService)

	eventService := event.NewService(eventRepo, time.Now)
	eventHandler := event.NewHandler(eventService)

	adminService := admin.NewService(skillRepo, bookingRepo, reviewRepo, userRepo)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public, with optional identity for owner visibility
		public := v1.Group("/")
		public.Use(middleware.OptionalJWTAuth(j))
		{
			pricingHandler.RegisterRoutes(public)
			catalogHandler.RegisterPublicRoutes(public)
			availabilityHandler.RegisterPublicRoutes(public)
			reviewHandler.RegisterPublicRoutes(public)
			eventHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			catalogHandler.RegisterProtectedRoutes(protected)
			availabilityHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			eventHandler.RegisterProtectedRoutes(protected)
		}

		adminGroup := v1.Group("/")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
			catalogHandler.RegisterAdminRoutes(adminGroup)
			eventHandler.RegisterAdminRoutes(adminGroup)
		}

		internal := v1.Group("/internal")
		internal.Use(middleware.InternalTokenAuth())
		{
			bookingHandler.RegisterInternalRoutes(internal)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
