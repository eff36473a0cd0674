package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenID 生成流水/推荐/迁移等内部记录ID
func GenID() int64 {
	return node.Generate().Int64()
}
