package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hotelops/internal/config"
	"hotelops/internal/database"
	"hotelops/internal/middleware"
	"hotelops/internal/modules/board"
	"hotelops/internal/modules/checkin"
	"hotelops/internal/modules/guest"
	"hotelops/internal/modules/ledger"
	"hotelops/internal/modules/roomstatus"
	"hotelops/internal/modules/staff"
	"hotelops/internal/modules/token"
	jwtsvc "hotelops/internal/pkg/jwt"
	"hotelops/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	propertyRepo := repository.NewPropertyRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.StaffJWTTTL)

	hub := board.NewHub()
	defer hub.Close()

	tokenService := token.NewService(tokenRepo, propertyRepo, bookingRepo)
	roomService := roomstatus.NewService(roomRepo, orderRepo, requestRepo)
	ledgerService := ledger.NewService(orderRepo, requestRepo, hub)
	checkinService := checkin.NewService(
		bookingRepo,
		roomService,
		tokenService,
		checkin.AllowAllVerifier{},
		cfg.GuestTokenTTL,
		cfg.DineInTTL,
	)

	staffService := staff.NewService(staffRepo, j)
	staffHandler := staff.NewHandler(staffService, roomService, checkinService, ledgerService, tokenService)
	guestHandler := guest.NewHandler(tokenService, ledgerService)
	boardHandler := board.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		staffHandler.RegisterPublicRoutes(v1)

		// guest surface: authorized by capability token, not by account
		guestHandler.RegisterRoutes(v1)

		// staff surface
		protected := v1.Group("/")
		protected.Use(middleware.StaffAuth(j))
		{
			staffHandler.RegisterRoutes(protected)
			boardHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
