package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

func GenUserID() int64 {
	return node.Generate().Int64()
}

// GenRecordID 记录主键在下发远端之前生成，
// 重试补发同一条插入时主键不变，远端唯一键兜底去重
func GenRecordID() int64 {
	return node.Generate().Int64()
}
