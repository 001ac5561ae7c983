package main

import (
	"os"
	"time"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/controllers"
	"github.com/calo-work-stack/Calo-sub001/routes"
	"github.com/calo-work-stack/Calo-sub001/services"
	"github.com/calo-work-stack/Calo-sub001/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	config.InitDB()
	config.InitRedis()
	utils.InitS3()
	utils.InitMailer()

	ai := services.NewAIService()
	rek, err := services.NewRekognitionService()
	if err != nil {
		logrus.WithError(err).Fatal("rekognition init failed")
	}
	analysis := services.NewMealAnalysisService(ai, rek)

	limiter := services.NewGenerationLimiter(config.Redis, time.Hour, 3)
	menus := services.NewMenuService(ai, limiter)

	push, err := services.NewPushService(config.DB)
	if err != nil {
		logrus.WithError(err).Fatal("push service init failed")
	}

	hub := services.NewRealtimeHub()
	services.InitEventDeps(config.DB, hub, push)

	stats := services.NewStatisticsService(config.DB)

	sched := services.NewScheduler()
	sched.Start()
	defer sched.Stop()

	r := routes.SetupRouter(routes.Deps{
		Meals:         controllers.NewMealController(analysis),
		Menus:         controllers.NewMenuController(menus),
		Questionnaire: controllers.NewQuestionnaireController(ai),
		Statistics:    controllers.NewStatisticsController(stats),
		Devices:       controllers.NewDeviceController(push),
		Realtime:      controllers.NewRealtimeController(hub),
		Dev:           controllers.NewDevController(push),
	})

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
