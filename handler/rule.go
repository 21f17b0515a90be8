package handler

import (
	"Encore/config"
	"Encore/middleware"
	"Encore/pkg/context"
	"Encore/pkg/response"
	"Encore/service"
	"Encore/types"

	"github.com/gin-gonic/gin"
)

type Rule struct {
	Config      *config.Config
	RuleService service.IRuleService
}

func (h *Rule) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	rules := r.Group("/v1/rules")
	rules.Use(authorize)
	rules.GET("/list", context.Wrap(h.List))
	rules.PUT("/:action_type", context.Wrap(h.Update))
}

func (h *Rule) List(c *gin.Context) error {
	items, err := h.RuleService.ListRules(c)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, items)
	return nil
}

// Update 改规则后本实例立即生效，其它实例收广播清缓存
func (h *Rule) Update(c *gin.Context) error {
	var req types.UpdateRuleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	err := h.RuleService.UpdateRule(c, c.Param("action_type"), req.Rate, *req.Active)
	if err != nil {
		if err == service.ErrBadRuleRate {
			return response.NewError(400, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, nil)
	return nil
}
