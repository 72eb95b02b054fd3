// Entry point for the Fairway Cup API server: golf tournament scoring with
// handicaps, Stableford, team formats, and Ryder Cup style match play.
// cmd/ holds executable binaries; internal/ holds the packages behind them.
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberws "github.com/gofiber/websocket/v2"

	"github.com/fairwaycup/api/internal/config"
	"github.com/fairwaycup/api/internal/database"
	"github.com/fairwaycup/api/internal/handlers"
	"github.com/fairwaycup/api/internal/middleware"
	"github.com/fairwaycup/api/internal/websocket"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Migrations run on startup so the schema is always in sync with the
	// binary that is about to serve it.
	if err := database.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The hub fans live leaderboard and match updates out to every client
	// watching a round.
	hub := websocket.NewHub()
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName: "Fairway Cup API",
	})

	app.Use(logger.New())
	app.Use(cors.New())

	// Liveness probe; no auth, no database.
	app.Get("/health", handlers.HealthCheck)

	// Live updates. The route-level middleware rejects plain HTTP requests
	// to the websocket path before the upgrade handler runs.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/rounds/:id", fiberws.New(func(conn *fiberws.Conn) {
		client := &websocket.Client{
			RoundID: conn.Params("id"),
			Send:    make(chan []byte, 16),
		}
		hub.Register(client)
		defer hub.Unregister(client)

		// Writer: drain the hub's messages into the connection. Runs as a
		// goroutine so the read loop below can detect the client closing.
		go func() {
			for msg := range client.Send {
				if err := conn.WriteMessage(fiberws.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// Read loop exists only to notice disconnects; clients never send.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))

	// Everything under /api/v1 requires a valid token; Auth also lazily
	// syncs the authenticated user into our users table.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Tournaments
	api.Get("/tournaments", handlers.GetTournaments(db))
	api.Post("/tournaments", middleware.RequireRole("admin", "manager"), handlers.CreateTournament(db))
	api.Post("/tournaments/:id/players", handlers.RegisterPlayer(db))
	api.Post("/tournaments/:id/rounds", handlers.CreateRound(db))
	api.Get("/tournaments/:id/standings", handlers.GetTournamentStandings(db))
	api.Get("/tournaments/:id/points", handlers.GetTournamentPoints(db))

	// Courses
	api.Get("/courses", handlers.GetCourses(db))
	api.Post("/courses", middleware.RequireRole("admin", "manager"), handlers.CreateCourse(db))

	// Rounds
	api.Get("/rounds/:id", handlers.GetRound(db))
	api.Patch("/rounds/:id/status", handlers.UpdateRoundStatus(db))
	api.Get("/rounds/:id/players", handlers.GetRoundPlayers(db))
	api.Post("/rounds/:id/players", handlers.AddRoundPlayer(db))
	api.Get("/rounds/:id/leaderboard", handlers.GetRoundLeaderboard(db))

	// Score entry
	api.Put("/rounds/:id/players/:playerID/scores", handlers.SubmitScores(db, hub))
	api.Put("/rounds/:id/players/:playerID/stableford-override", handlers.SetStablefordOverride(db, hub))

	// Teams
	api.Get("/rounds/:id/teams", handlers.GetRoundTeams(db))
	api.Post("/rounds/:id/teams", handlers.CreateTeam(db))
	api.Put("/teams/:id/scores", handlers.SubmitTeamScores(db, hub))

	// Match play
	api.Get("/rounds/:id/matches", handlers.GetRoundMatches(db))
	api.Post("/rounds/:id/matches", handlers.CreateMatch(db))
	api.Get("/matches/:id", handlers.GetMatch(db))
	api.Put("/matches/:id/holes/:holeNumber", handlers.SubmitMatchHole(db, hub))

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
