package handler

import (
	"Encore/config"
	"Encore/middleware"
	"Encore/pkg/context"
	"Encore/pkg/response"
	"Encore/service"
	"Encore/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Card struct {
	Config      *config.Config
	CardService service.ICardService
}

func (h *Card) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	cards := r.Group("/v1/cards")
	cards.Use(authorize)
	cards.POST("/issue", context.Wrap(h.Issue))
	cards.POST("/:id/block", context.Wrap(h.Block))
	cards.POST("/refresh", context.Wrap(h.Refresh))
	cards.GET("/list", context.Wrap(h.List))
	cards.GET("/uid/:card_uid", context.Wrap(h.Lookup))
}

// Lookup 刷卡读卡：按卡面序列号取卡片和会员快照
func (h *Card) Lookup(c *gin.Context) error {
	card, err := h.CardService.LookupByUID(c, c.Param("card_uid"))
	if err != nil {
		if err == service.ErrCardNotFound {
			return response.NewError(404, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, card)
	return nil
}

func (h *Card) Issue(c *gin.Context) error {
	var req types.IssueCardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	card, err := h.CardService.IssueCard(c, req.UserID, req.CardClass)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, card)
	return nil
}

func (h *Card) Block(c *gin.Context) error {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "id 参数错误")
	}

	if err := h.CardService.BlockCard(c, cardID); err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, nil)
	return nil
}

// Refresh 手动触发一次快照重算（平时由等级变化自动触发）
func (h *Card) Refresh(c *gin.Context) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return response.NewError(400, "user_id 参数错误")
	}

	if err := h.CardService.RefreshCardMetadata(c, userID); err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, nil)
	return nil
}

func (h *Card) List(c *gin.Context) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		return response.NewError(400, "user_id 参数错误")
	}

	cards, err := h.CardService.ListCards(c, userID)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, cards)
	return nil
}
