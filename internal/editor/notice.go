package editor

// NoticeLevel 提示级别
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice 面向操作员的提示消息
type Notice struct {
	Level    NoticeLevel
	Message  string
	Warnings map[string]string
}

// Outcome 一次提交的结果
type Outcome int

const (
	// OutcomeInvalid 本地校验未通过，未发出请求
	OutcomeInvalid Outcome = iota + 1
	// OutcomeSaved 服务端保存成功
	OutcomeSaved
	// OutcomeRejected 服务端返回 success:false
	OutcomeRejected
	// OutcomeFailed 传输失败或载荷编码失败
	OutcomeFailed
	// OutcomeDiscarded 请求返回前会话已关闭，响应被丢弃
	OutcomeDiscarded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSaved:
		return "saved"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeDiscarded:
		return "discarded"
	}
	return "unknown"
}
