package controller

import (
	"task-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}

type healthController struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) IHealthController {
	return &healthController{
		db:  db,
		rdb: rdb,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/ready", c.Ready)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// Ready reports 503 until both Postgres and Redis answer a ping.
func (c *healthController) Ready(ctx *fiber.Ctx) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Database not ready"))
	}
	if err := sqlDB.PingContext(ctx.Context()); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Database not ready"))
	}
	if err := c.rdb.Ping(ctx.Context()).Err(); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Redis not ready"))
	}
	return ctx.JSON(fiber.Map{"status": "ready"})
}
