package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/adilnv/internlink/internship/candidature/candidatureapi"
	"github.com/adilnv/internlink/internship/candidature/candidatureinfra"
	"github.com/adilnv/internlink/internship/candidature/candidaturesrv"
	"github.com/adilnv/internlink/internship/certificate/certificateapi"
	"github.com/adilnv/internlink/internship/certificate/certificateinfra"
	"github.com/adilnv/internlink/internship/certificate/certificatesrv"
	"github.com/adilnv/internlink/internship/criterion/criterionapi"
	"github.com/adilnv/internlink/internship/criterion/criterioninfra"
	"github.com/adilnv/internlink/internship/criterion/criterionsrv"
	"github.com/adilnv/internlink/internship/evaluation/evaluationapi"
	"github.com/adilnv/internlink/internship/evaluation/evaluationinfra"
	"github.com/adilnv/internlink/internship/evaluation/evaluationsrv"
	"github.com/adilnv/internlink/internship/mission/missionapi"
	"github.com/adilnv/internlink/internship/mission/missioninfra"
	"github.com/adilnv/internlink/internship/mission/missionsrv"
	"github.com/adilnv/internlink/internship/organization/orgapi"
	"github.com/adilnv/internlink/internship/organization/orginfra"
	"github.com/adilnv/internlink/internship/organization/orgsrv"
	"github.com/adilnv/internlink/internship/posting/postingapi"
	"github.com/adilnv/internlink/internship/posting/postinginfra"
	"github.com/adilnv/internlink/internship/posting/postingsrv"
	"github.com/adilnv/internlink/internship/stage/stageapi"
	"github.com/adilnv/internlink/internship/stage/stageinfra"
	"github.com/adilnv/internlink/internship/stage/stagesrv"
	"github.com/adilnv/internlink/pkg/fsx"
	"github.com/adilnv/internlink/pkg/fsx/fsxs3"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user/userapi"
	"github.com/adilnv/internlink/pkg/iam/user/userinfra"
	"github.com/adilnv/internlink/pkg/iam/user/usersrv"
	"github.com/adilnv/internlink/pkg/logx"
	"github.com/adilnv/internlink/pkg/notify"
	"github.com/adilnv/internlink/pkg/notify/notifyredis"
	"github.com/adilnv/internlink/pkg/notify/worker"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Notifications
	NotificationQueue  notify.Queue
	Notifier           notify.Notifier
	NotificationWorker *worker.NotificationWorker

	// Services
	TokenService       auth.TokenService
	UserService        *usersrv.UserService
	OrganizationSrv    *orgsrv.OrganizationService
	PostingService     *postingsrv.PostingService
	CandidatureService *candidaturesrv.CandidatureService
	StageService       *stagesrv.StageService
	MissionService     *missionsrv.MissionService
	CriterionService   *criterionsrv.CriterionService
	EvaluationService  *evaluationsrv.EvaluationService
	CertificateService *certificatesrv.CertificateService

	// API Handlers
	UserHandlers        *userapi.Handlers
	OrganizationHdl     *orgapi.Handlers
	PostingHandlers     *postingapi.Handlers
	CandidatureHandlers *candidatureapi.Handlers
	StageHandlers       *stageapi.Handlers
	MissionHandlers     *missionapi.Handlers
	CriterionHandlers   *criterionapi.Handlers
	EvaluationHandlers  *evaluationapi.Handlers
	CertificateHandlers *certificateapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Notification Queue
	c.NotificationQueue = notifyredis.NewRedisQueue(c.Redis, "internlink:notifications")
	c.Notifier = notify.NewQueueNotifier(c.NotificationQueue)
	c.NotificationWorker = worker.NewNotificationWorker(c.NotificationQueue, worker.LogSender{}, 2)
}

func (c *Container) initServices() {
	// --- Auth ---
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(jwtSecret, 24*time.Hour, "internlink")
	passwordSvc := auth.NewBcryptPasswordService()

	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	orgRepo := orginfra.NewPostgresOrganizationRepository(c.DB)
	postingRepo := postinginfra.NewPostgresPostingRepository(c.DB)
	candidatureRepo := candidatureinfra.NewPostgresCandidatureRepository(c.DB)
	stageRepo := stageinfra.NewPostgresStageRepository(c.DB)
	missionRepo := missioninfra.NewPostgresMissionRepository(c.DB)
	criterionRepo := criterioninfra.NewPostgresCriterionRepository(c.DB)
	evaluationRepo := evaluationinfra.NewPostgresEvaluationRepository(c.DB)
	certificateRepo := certificateinfra.NewPostgresCertificateRepository(c.DB)

	// --- Domain Services ---
	verifyBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if verifyBaseURL == "" {
		verifyBaseURL = "http://localhost:8080"
	}

	c.UserService = usersrv.NewUserService(userRepo, passwordSvc, c.TokenService)
	c.OrganizationSrv = orgsrv.NewOrganizationService(orgRepo)
	c.PostingService = postingsrv.NewPostingService(postingRepo, orgRepo, userRepo)
	c.CandidatureService = candidaturesrv.NewCandidatureService(candidatureRepo, postingRepo, userRepo, c.FileSystem, c.Notifier)
	c.StageService = stagesrv.NewStageService(stageRepo, userRepo, c.Notifier)
	c.MissionService = missionsrv.NewMissionService(missionRepo, stageRepo, userRepo, c.Notifier)
	c.CriterionService = criterionsrv.NewCriterionService(criterionRepo, orgRepo, userRepo)
	c.EvaluationService = evaluationsrv.NewEvaluationService(evaluationRepo, criterionRepo, stageRepo, userRepo, c.Notifier)
	c.CertificateService = certificatesrv.NewCertificateService(
		certificateRepo,
		evaluationRepo,
		stageRepo,
		orgRepo,
		userRepo,
		c.FileSystem,
		c.Notifier,
		verifyBaseURL,
	)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.OrganizationHdl = orgapi.NewHandlers(c.OrganizationSrv)
	c.PostingHandlers = postingapi.NewHandlers(c.PostingService)
	c.CandidatureHandlers = candidatureapi.NewHandlers(c.CandidatureService)
	c.StageHandlers = stageapi.NewHandlers(c.StageService)
	c.MissionHandlers = missionapi.NewHandlers(c.MissionService)
	c.CriterionHandlers = criterionapi.NewHandlers(c.CriterionService)
	c.EvaluationHandlers = evaluationapi.NewHandlers(c.EvaluationService)
	c.CertificateHandlers = certificateapi.NewHandlers(c.CertificateService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService)
}
