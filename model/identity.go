package model

import (
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// ID 是模型中实体/包/活动的稳定标识。0 保留为 "no entity"。
type ID uint64

// NoID 表示没有对应实体。
const NoID ID = 0

// ToID 将限定名确定性地映射为一个 63 位非零 ID。
// 同一字符串在整个运行期间（以及跨运行）始终得到同一 ID，
// 这是 add-if-absent 去重和跨访问阶段引用关系端点的前提。
//
// 哈希碰撞是已知且可接受的风险：63 位空间内不做检测，也不做补救。
func ToID(qualifiedName string) ID {
	id := ID(xxhash.Sum64String(qualifiedName) >> 1)
	if id == NoID {
		// Sum64 落在 0 或 1 时右移后为 0，与保留值冲突，固定映射到 1
		id = 1
	}
	return id
}

// PathID 将文件系统路径规范化后映射为 ID。
func PathID(path string) ID {
	return ToID(filepath.Clean(path))
}
