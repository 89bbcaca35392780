package main

import (
	"fmt"
	"log"

	"millgate/internal/config"
	emailnoop "millgate/internal/email/noop"
	emailses "millgate/internal/email/ses"
	"millgate/internal/handler"
	"millgate/internal/port"
	"millgate/internal/repository/postgres"
	"millgate/internal/router"
	"millgate/internal/service"
	s3storage "millgate/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	orgRepo := postgres.NewOrganizationRepo(db)
	userRepo := postgres.NewUserRepo(db)
	cropYearRepo := postgres.NewCropYearRepo(db)
	riceTypeRepo := postgres.NewRiceTypeRepo(db)
	varietyRepo := postgres.NewRiceVarietyRepo(db)
	byProductRepo := postgres.NewByProductRepo(db)
	locationRepo := postgres.NewLocationRepo(db)
	rateRepo := postgres.NewSeasonRateRepo(db)

	// Initialize adapters
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = emailnoop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, orgRepo, cfg.JWT)
	orgSvc := service.NewOrganizationService(orgRepo, userRepo)
	userSvc := service.NewUserService(userRepo)
	masterSvc := service.NewMasterDataService(cropYearRepo, riceTypeRepo, varietyRepo, byProductRepo)
	locationSvc := service.NewLocationService(locationRepo)
	importSvc := service.NewVillageImportService(locationRepo, s3Client, cfg.S3.Bucket)
	rateSvc := service.NewSeasonRateService(rateRepo, riceTypeRepo, cropYearRepo, orgRepo, userRepo, emailSender)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc)
	orgH := handler.NewOrganizationHandler(orgSvc)
	userH := handler.NewUserHandler(userSvc)
	masterH := handler.NewMasterDataHandler(masterSvc)
	locationH := handler.NewLocationHandler(locationSvc, importSvc, cfg.S3.MaxFileSizeMB)
	rateH := handler.NewSeasonRateHandler(rateSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, orgH, userH, masterH, locationH, rateH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
