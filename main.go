package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/doctorsportal/server/cache"
	"github.com/doctorsportal/server/controllers"
	"github.com/doctorsportal/server/cron"
	"github.com/doctorsportal/server/db"
	"github.com/doctorsportal/server/routes"
	"github.com/doctorsportal/server/utils"
)

func main() {
	database, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	if err := db.Seed(database); err != nil {
		log.Fatal("Failed to seed appointment options: ", err)
	}

	availability := cache.NewFromEnv(context.Background())
	mailer := utils.NewMailerFromEnv()
	uploader, err := utils.NewUploaderFromEnv()
	if err != nil {
		log.Fatal("Failed to configure Cloudinary: ", err)
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Doctors Portal server is running!")
	})

	routes.SetupOptionRoutes(app, controllers.NewOptionController(database, availability))
	routes.SetupBookingRoutes(app, controllers.NewBookingController(database, availability, mailer))
	routes.SetupUserRoutes(app, controllers.NewUserController(database), database)
	routes.SetupDoctorRoutes(app, controllers.NewDoctorController(database, uploader), database)
	routes.SetupPaymentRoutes(app, controllers.NewPaymentController(database))

	if _, err := cron.StartReminderJob(database, mailer); err != nil {
		log.Fatal("Failed to start reminder job: ", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Fatal(app.Listen(":" + port))
}
