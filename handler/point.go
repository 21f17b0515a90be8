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

type Point struct {
	Config       *config.Config
	PointService service.IPointService
}

func (p *Point) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(p.Config.Jwt.Secret))
	points := r.Group("/v1/points")
	points.Use(authorize)
	points.GET("/membership", context.Wrap(p.Membership))
	points.GET("/records", context.Wrap(p.Records))
	points.POST("/checkin", context.Wrap(p.Checkin))
	points.POST("/adjust", context.Wrap(p.Adjust))
}

// queryUserID 取 user_id 参数，不传则回退到令牌里的当前用户
func queryUserID(c *gin.Context) (int64, error) {
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, response.NewError(400, "user_id 参数错误")
		}
		return userID, nil
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return 0, response.NewError(400, "user_id 参数错误")
	}
	return userID, nil
}

func (p *Point) Membership(c *gin.Context) error {
	userID, err := queryUserID(c)
	if err != nil {
		return err
	}

	m, err := p.PointService.GetMembership(c, userID)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	if m == nil {
		// 还没有会员记录不是错误，前端按零积分银卡展示
		response.Success(c, nil)
		return nil
	}
	response.Success(c, types.MembershipResp{
		UserID:         m.UserID,
		Tier:           m.Tier,
		PointsBalance:  m.PointsBalance,
		LifetimePoints: m.LifetimePoints,
		Status:         m.Status,
	})
	return nil
}

func (p *Point) Records(c *gin.Context) error {
	userID, err := queryUserID(c)
	if err != nil {
		return err
	}
	action := c.DefaultQuery("action", "")
	cursor, _ := strconv.ParseInt(c.DefaultQuery("cursor", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := p.PointService.ListPointRecords(c, userID, action, cursor, limit)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}

// Checkin 活动签到加分
func (p *Point) Checkin(c *gin.Context) error {
	var req types.CheckinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	result, err := p.PointService.ProcessEventCheckin(c, req.UserID, req.EventRef, req.RefID)
	if err != nil {
		if err == service.ErrDuplicateAward {
			return response.NewError(40011, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, result)
	return nil
}

// Adjust 后台人工调整积分（可负，余额允许透支）
func (p *Point) Adjust(c *gin.Context) error {
	var req types.AdjustPointsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	adminID := context.GetStaffID(c)
	result, err := p.PointService.AdjustPointsManually(c, req.UserID, req.Delta, req.Reason, adminID)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, result)
	return nil
}
