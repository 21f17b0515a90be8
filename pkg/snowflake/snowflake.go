package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

func GenID() int64 {
	return node.Generate().Int64()
}

// GenOrderSN 生成订单号（雪花 ID 的 base32 文本形式）
func GenOrderSN() string {
	return node.Generate().Base32()
}
