package output

import (
	"encoding/json"
	"io"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// JSONLWriter 按行写 JSON 对象
type JSONLWriter struct {
	encoder *json.Encoder
}

// NewJSONLWriter 创建一个 JSONL 写入器
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
	}
}

// Write 编码一个对象为一行
func (w *JSONLWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// ExportElements 导出全部实体与包节点，返回导出数量
func ExportElements(w io.Writer, d *model.Diagram) (int, error) {
	writer := NewJSONLWriter(w)
	count := 0

	for _, e := range d.Entities() {
		if err := writer.Write(e); err != nil {
			return count, err
		}
		count++
	}

	for _, p := range d.Packages() {
		if err := writer.Write(p); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// ExportRelations 导出全部关系边，返回导出数量
func ExportRelations(w io.Writer, d *model.Diagram) (int, error) {
	writer := NewJSONLWriter(w)
	count := 0

	for _, rel := range d.Relationships() {
		if err := writer.Write(rel); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
