package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetStats handles GET /api/admin/stats
// @Summary Dashboard headline counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/stats [get]
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.adminService.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetAnalytics handles GET /api/admin/analytics
// @Summary Posts and signups per month for the trailing year
// @Description Twelve buckets, zero-filled for months with no activity.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.MonthBucket
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/analytics [get]
func (s *Server) GetAnalytics(c *fiber.Ctx) error {
	buckets, err := s.adminService.GetAnalytics(c.Context(), time.Now().UTC())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(buckets)
}

// ReconcileComments handles POST /api/admin/reconcile-comments
// @Summary Repair drifted comment counters
// @Description Rewrites every post's comments count from the live comment rows.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{repaired=int}
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/reconcile-comments [post]
func (s *Server) ReconcileComments(c *fiber.Ctx) error {
	repaired, err := s.adminService.ReconcileCommentsCount(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"repaired": repaired})
}
