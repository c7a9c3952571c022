package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/service"
)

type CardHandler struct {
	svc service.CardService
}

func NewCardHandler(svc service.CardService) *CardHandler {
	return &CardHandler{svc: svc}
}

type CardResponse struct {
	CardNumber    string `json:"cardNumber"`
	CustomerPhone string `json:"customerPhone"`
	CustomerName  string `json:"customerName,omitempty"`
	Points        int64  `json:"points"`
	Cashback      string `json:"cashback"`
	ValidFrom     string `json:"validFrom"`
	ValidThru     string `json:"validThru"`
}

func toCardResponse(card *model.ShaktiCard) CardResponse {
	return CardResponse{
		CardNumber:    card.CardNumber,
		CustomerPhone: card.CustomerPhone,
		CustomerName:  card.CustomerName,
		Points:        card.Points,
		Cashback:      card.Cashback.StringFixed(2),
		ValidFrom:     card.ValidFrom.Format(time.RFC3339),
		ValidThru:     card.ValidThru.Format(time.RFC3339),
	}
}

func (h *CardHandler) GetByPhone(c echo.Context) error {
	card, err := h.svc.FindByPhone(c.Request().Context(), c.Param("phone"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "no card for that phone number"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch card"))
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}
