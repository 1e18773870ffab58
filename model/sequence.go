package model

// --- 时序活动 (Sequence Activities) ---

// MessageKind 是表示时序消息类型的字符串常量
type MessageKind string

const (
	MessageCall   MessageKind = "CALL"   // Call: from 调用 to
	MessageReturn MessageKind = "RETURN" // Return: to 向 from 返回
)

// Message 是一条调用/返回消息。
// FromName/ToName 是访问阶段拷贝出的参与者显示名缓存，
// 渲染时优先查模型中的实体，查不到再退回缓存。
type Message struct {
	Kind       MessageKind `json:"Kind"`
	From       ID          `json:"From"`                 // From: 调用方参与者 ID
	To         ID          `json:"To"`                   // To: 被调方参与者 ID
	Callee     ID          `json:"Callee"`               // Callee: 被调 callable 的活动标识
	FromName   string      `json:"FromName"`             // FromName: 调用方显示名
	ToName     string      `json:"ToName"`               // ToName: 被调方显示名
	Label      string      `json:"Label"`                // Label: 显示文本 (e.g., "a")
	ReturnType string      `json:"ReturnType,omitempty"` // ReturnType: 被调方的返回类型名
}

// Activity 是属于一个 callable 的有序出站消息序列，
// 用于重建时序图中的嵌套调用链。
type Activity struct {
	ID       ID        `json:"ID"`       // ID: callable 的活动标识
	From     string    `json:"From"`     // From: callable 的显示名
	Messages []Message `json:"Messages"` // Messages: 有序消息列表
}

// AddMessage 追加一条消息
func (a *Activity) AddMessage(m Message) {
	a.Messages = append(a.Messages, m)
}
