package routes

import (
	"github.com/gofiber/fiber/v2"

	"tokennove.com/controllers"
)

func Setup(app *fiber.App, portfolioController *controllers.PortfolioController) {
	app.Get("/api/portfolio", portfolioController.GetPortfolio)
	app.Get("/api/positions", portfolioController.GetPositions)
	app.Get("/api/positions/:id/earnings", portfolioController.GetPositionEarnings)
}
