package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1")

	r.Get("/stakes/:address", h.GetStakes)
	r.Get("/token", h.GetToken)
	r.Get("/transactions", h.GetTransactions)
	r.Get("/transactions/:hash", h.GetTransaction)
	r.Post("/transactions/:hash", h.TrackTransaction)
	r.Get("/lp/:pool/:address", h.GetLPPosition)
	return nil
}
