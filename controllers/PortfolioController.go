package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"tokennove.com/db"
	"tokennove.com/dto"
	"tokennove.com/services"
	"tokennove.com/types"
)

type PortfolioController struct {
	cfg types.Config
}

func NewPortfolioController(cfg types.Config) *PortfolioController {
	return &PortfolioController{cfg: cfg}
}

// GetPortfolio godoc
//
//	@Summary		Current portfolio valuation
//	@Description	Joins the position catalog with the earnings ledger and live prices into one snapshot with portfolio totals.
//	@Tags			Portfolio
//	@Produce		json
//	@Success		200	{object}	dto.PortfolioResponse
//	@Failure		500	{object}	dto.ErrorResponse	"Position catalog unavailable"
//	@Router			/api/portfolio [get]
func (pc *PortfolioController) GetPortfolio(c *fiber.Ctx) error {
	service := services.NewPortfolioService(db.DB, pc.cfg.PriceAPIURL, pc.cfg.WorkerLimit)

	response, err := service.BuildPortfolio(c.Context())
	if err != nil {
		log.Errorf("portfolio aggregation failed: %v", err)
		return c.Status(500).JSON(dto.ErrorResponse{
			Error:   "CatalogUnavailable",
			Message: "Failed to load positions: " + err.Error(),
		})
	}

	return c.JSON(response)
}

// GetPositions godoc
//
//	@Summary		Raw position catalog
//	@Tags			Portfolio
//	@Produce		json
//	@Success		200	{object}	types.Response{data=[]types.Position}
//	@Failure		500	{object}	types.Response
//	@Router			/api/positions [get]
func (pc *PortfolioController) GetPositions(c *fiber.Ctx) error {
	var positions []types.Position
	if err := db.DB.WithContext(c.Context()).Order("id ASC").Find(&positions).Error; err != nil {
		return c.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to load positions: " + err.Error(),
		})
	}

	return c.JSON(types.Response{
		Success: true,
		Data:    positions,
	})
}

// GetPositionEarnings godoc
//
//	@Summary		Earnings ledger for one position
//	@Tags			Portfolio
//	@Produce		json
//	@Param			id	path		int	true	"Position ID"
//	@Success		200	{object}	types.Response{data=[]types.EarningEntry}
//	@Failure		400	{object}	types.Response	"Invalid position id"
//	@Failure		404	{object}	types.Response	"Position not found"
//	@Router			/api/positions/{id}/earnings [get]
func (pc *PortfolioController) GetPositionEarnings(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(400).JSON(types.Response{
			Success: false,
			Error:   "Invalid position id",
		})
	}

	var position types.Position
	if err := db.DB.WithContext(c.Context()).First(&position, id).Error; err != nil {
		return c.Status(404).JSON(types.Response{
			Success: false,
			Error:   "Position not found",
		})
	}

	var entries []types.EarningEntry
	if err := db.DB.WithContext(c.Context()).
		Where("position_id = ?", id).
		Order("earn_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return c.Status(500).JSON(types.Response{
			Success: false,
			Error:   "Failed to load earnings: " + err.Error(),
		})
	}

	return c.JSON(types.Response{
		Success: true,
		Data:    entries,
	})
}
