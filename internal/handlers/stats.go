package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"exampdf/internal/exam"
	u "exampdf/internal/utils"
)

const (
	renderTotalKey      = "exampdf:renders:total"
	renderSubjectPrefix = "exampdf:renders:subject:"
)

// recordRender bumps the render counters in Redis. Best effort: counter
// failures are logged, never surfaced to the caller.
func (svc *PDFService) recordRender(c *fiber.Ctx, subject string) {
	if svc.Redis == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()

	pipe := svc.Redis.Pipeline()
	pipe.Incr(ctx, renderTotalKey)
	pipe.Incr(ctx, renderSubjectPrefix+exam.SafeFilename(subject))
	if _, err := pipe.Exec(ctx); err != nil {
		u.Warn("Failed to record render counters", "error", err)
	}
}

// HandleRenderStats reports how many papers have been rendered, in total
// and per subject.
func (svc *PDFService) HandleRenderStats(c *fiber.Ctx) error {
	if svc.Redis == nil {
		return c.JSON(fiber.Map{"enabled": false, "total": 0, "subjects": fiber.Map{}})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 1*time.Second)
	defer cancel()

	total, err := svc.Redis.Get(ctx, renderTotalKey).Int64()
	if err != nil && err != redis.Nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Stats unavailable: "+err.Error())
	}

	subjects := map[string]int64{}
	var cursor uint64
	for {
		keys, next, err := svc.Redis.Scan(ctx, cursor, renderSubjectPrefix+"*", 100).Result()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stats unavailable: "+err.Error())
		}
		for _, key := range keys {
			n, err := svc.Redis.Get(ctx, key).Result()
			if err != nil {
				continue
			}
			if count, err := strconv.ParseInt(n, 10, 64); err == nil {
				subjects[strings.TrimPrefix(key, renderSubjectPrefix)] = count
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return c.JSON(fiber.Map{
		"enabled":  true,
		"total":    total,
		"subjects": subjects,
	})
}
