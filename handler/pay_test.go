package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Encore/models"
	"Encore/service"
	"Encore/types"

	"github.com/gin-gonic/gin"
)

type orderServiceStub struct {
	transitions []int8
	err         error
}

func (s *orderServiceStub) CreateOrder(ctx context.Context, req *types.CreateOrderReq) (*types.OrderResp, error) {
	return nil, nil
}

func (s *orderServiceStub) SetOrderStatus(ctx context.Context, orderSN string, target int8) (*types.OrderResp, error) {
	s.transitions = append(s.transitions, target)
	if s.err != nil {
		return nil, s.err
	}
	return &types.OrderResp{OrderSN: orderSN, Status: target}, nil
}

func (s *orderServiceStub) GetOrder(ctx context.Context, orderSN string) (*types.OrderResp, error) {
	return nil, nil
}

func (s *orderServiceStub) GetOrderList(ctx context.Context, customerID int64, cursor int64, pageSize int) (*types.ListOrdersResp, error) {
	return nil, nil
}

var _ service.IOrderService = (*orderServiceStub)(nil)

func notify(t *testing.T, stub *orderServiceStub, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewPay(stub).RegisterRouter(r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/pay/notify", strings.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

// 只有明确的终态才驱动订单流转
func TestNotifyTerminalStates(t *testing.T) {
	cases := []struct {
		state string
		want  int8
	}{
		{"SUCCESS", models.OrderStatusPaid},
		{"PAYERROR", models.OrderStatusFailed},
		{"CLOSED", models.OrderStatusFailed},
	}
	for _, c := range cases {
		stub := &orderServiceStub{}
		w := notify(t, stub, `{"out_trade_no":"SN1","trade_state":"`+c.state+`"}`)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", c.state, w.Code)
		}
		if len(stub.transitions) != 1 || stub.transitions[0] != c.want {
			t.Errorf("%s: 流转记录 %v, want [%d]", c.state, stub.transitions, c.want)
		}
	}
}

// 中间态（如 USERPAYING）不能把待支付订单打成终态
func TestNotifyIntermediateStateKeepsOrder(t *testing.T) {
	stub := &orderServiceStub{}
	w := notify(t, stub, `{"out_trade_no":"SN1","trade_state":"USERPAYING"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if len(stub.transitions) != 0 {
		t.Errorf("中间态不应驱动订单流转: %v", stub.transitions)
	}
}

// 重复回调（状态已流转）直接应答成功，让网关停止重试
func TestNotifyDuplicateCallbackAcked(t *testing.T) {
	stub := &orderServiceStub{err: service.ErrInvalidTransition}
	w := notify(t, stub, `{"out_trade_no":"SN1","trade_state":"SUCCESS"}`)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SUCCESS") {
		t.Errorf("应答应为 SUCCESS: %s", w.Body.String())
	}
}
