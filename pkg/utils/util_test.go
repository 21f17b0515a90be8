package utils

import "testing"

func TestGenCardSerial(t *testing.T) {
	a := GenCardSerial("test-salt", 1001)
	b := GenCardSerial("test-salt", 1001)
	if a != b {
		t.Errorf("同一 ID 应生成相同卡号: %s != %s", a, b)
	}
	if len(a) < 12 {
		t.Errorf("卡号长度不足: %s", a)
	}
	if c := GenCardSerial("test-salt", 1002); c == a {
		t.Errorf("不同 ID 生成了相同卡号: %s", c)
	}
	if d := GenCardSerial("other-salt", 1001); d == a {
		t.Errorf("不同盐值生成了相同卡号: %s", d)
	}
}
