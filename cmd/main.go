package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/catalog"
	"github.com/rajivijay0509/nutrition-tracker-web/config"
	"github.com/rajivijay0509/nutrition-tracker-web/controllers"
	"github.com/rajivijay0509/nutrition-tracker-web/middlewares"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories/local"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories/postgres"
	"github.com/rajivijay0509/nutrition-tracker-web/routes"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
	"github.com/rajivijay0509/nutrition-tracker-web/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func openCache(ctx context.Context, cfg *config.Config, log *logrus.Logger) (cache.KV, error) {
	if cfg.RedisAddr != "" {
		client, err := config.OpenRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.WithField("addr", cfg.RedisAddr).Info("local cache on redis")
		return cache.NewRedisKV(client, "nutritrack:"), nil
	}
	log.WithField("dir", cfg.LocalCacheDir).Info("local cache on disk")
	return cache.NewFileKV(cfg.LocalCacheDir)
}

func authProvider(cfg *config.Config, db *gorm.DB, mailer utils.Mailer, log *logrus.Logger) services.AuthProvider {
	if cfg.AuthProvider == config.AuthLocal {
		return services.NewLocalAuth(db, []byte(cfg.JWTSecret), mailer, log)
	}
	return services.NewSupabaseAuth(cfg.SupabaseURL, cfg.SupabaseAnonKey)
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(services.RemoteFallbacks)
	reg.MustRegister(middlewares.Collectors()...)

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load food catalog: %w", err)
	}
	unitPolicy, err := catalog.ParseUnitPolicy(cfg.CalorieUnitPolicy)
	if err != nil {
		return err
	}
	labelMode, err := services.ParseTrendLabelMode(cfg.TrendLabels)
	if err != nil {
		return err
	}

	kv, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Remote stores stay nil interfaces when no database is configured.
	var (
		db             *gorm.DB
		remoteMeals    repositories.MealRepository
		remoteWellness repositories.WellnessRepository
		remoteSymptoms repositories.SymptomRepository
		remoteGoals    repositories.GoalRepository
		remoteProfiles repositories.ProfileRepository
	)
	if cfg.RemoteEnabled() {
		db, err = config.OpenDB(cfg)
		if err != nil {
			return err
		}
		remoteMeals = postgres.NewMealRepo(db)
		remoteWellness = postgres.NewWellnessRepo(db)
		remoteSymptoms = postgres.NewSymptomRepo(db)
		remoteGoals = postgres.NewGoalRepo(db)
		remoteProfiles = postgres.NewProfileRepo(db)
		log.WithField("host", cfg.DBHost).Info("remote store connected")
	} else {
		log.Warn("DB_HOST not set, running on the local cache only")
	}

	var photos services.PhotoStore
	if cfg.S3Bucket != "" {
		region := cfg.S3Region
		if region == "" {
			region = cfg.AWSRegion
		}
		up, err := utils.NewS3Uploader(ctx, region, cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			return err
		}
		photos = up
	}

	var labels services.LabelDetector
	if cfg.Rekognition {
		rek, err := services.NewRekognitionService(ctx, cfg.AWSRegion)
		if err != nil {
			return err
		}
		labels = rek
	}

	var mailer utils.Mailer
	if cfg.SESEmail != "" {
		m, err := utils.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			return err
		}
		mailer = m
	}

	var (
		push     *services.PushService
		notifier services.Notifier
	)
	if cfg.SNSPlatformARN != "" {
		push, err = services.NewPushService(ctx, cfg.AWSRegion, cfg.SNSPlatformARN, local.NewDeviceStore(kv), log)
		if err != nil {
			return err
		}
		notifier = push
	}

	hub := services.NewRealtimeHub(log)
	wellnessStore := local.NewWellnessStore(kv)

	foods := services.NewFoodService(cat, unitPolicy, labels)
	meals := services.NewMealService(remoteMeals, local.NewMealStore(kv), foods, photos, log, hub)
	wellness := services.NewWellnessService(remoteWellness, wellnessStore, remoteSymptoms, wellnessStore.Symptoms(), log, hub)
	goals := services.NewGoalService(remoteGoals, local.NewGoalStore(kv), notifier, log, hub)
	profiles := services.NewProfileService(remoteProfiles, local.NewProfileStore(kv), wellness, photos, log, hub)
	recipeStore := local.NewRecipeStore(kv)
	recipes := services.NewRecipeService(recipeStore, log)
	community := services.NewCommunityService(local.NewCommunityStore(kv), recipeStore, log)
	dashboard := services.NewDashboardService(meals, wellness, profiles, cat, labelMode)
	history := services.NewHistoryService(meals, wellness)
	auth := services.NewAuthService(authProvider(cfg, db, mailer, log), profiles, hub, log)

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(routes.Handlers{
		Auth:      controllers.NewAuthController(auth, cfg.SecureCookies),
		Meals:     controllers.NewMealController(meals),
		Foods:     controllers.NewFoodController(foods),
		Wellness:  controllers.NewWellnessController(wellness),
		Goals:     controllers.NewGoalController(goals),
		Profile:   controllers.NewProfileController(profiles),
		Recipes:   controllers.NewRecipeController(recipes),
		Community: controllers.NewCommunityController(community),
		Dashboard: controllers.NewDashboardController(dashboard, history),
		Devices:   controllers.NewDeviceController(push),
		Realtime:  controllers.NewRealtimeController(hub),
		Views: &controllers.ViewController{
			Dashboard: dashboard,
			History:   history,
			Foods:     foods,
			Meals:     meals,
			Wellness:  wellness,
			Goals:     goals,
			Recipes:   recipes,
			Community: community,
			Profiles:  profiles,
		},
	}, routes.Options{
		JWTSecret: []byte(cfg.JWTSecret),
		Log:       log,
		Gatherer:  reg,
		AuthRate:  rate.Limit(float64(cfg.AuthRatePerMinute) / 60),
		AuthBurst: 5,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "auth": cfg.AuthProvider}).Info("server listening")
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
