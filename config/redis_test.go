package config

import "testing"

func TestRedisAddr(t *testing.T) {
	r := &Redis{Address: "127.0.0.1", Port: 6379}
	if got := r.Addr(); got != "127.0.0.1:6379" {
		t.Errorf("Addr() = %s, want 127.0.0.1:6379", got)
	}
}
