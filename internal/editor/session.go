package editor

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"

	"github.com/catalogkit/internal/client"
	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/i18n"
	"github.com/catalogkit/internal/logger"
)

// Kind 会话编辑的实体类型（同时是管理端 API 的资源路径）
type Kind string

const (
	KindProduct   Kind = "products"
	KindCombo     Kind = "combos"
	KindPromotion Kind = "promotions"
)

var (
	ErrSubmitInProgress = errors.New("submit in progress")
	ErrSessionClosed    = errors.New("session closed")
	ErrUnknownKind      = errors.New("unknown entity kind")
)

// Gateway 管理端 API 的读写接口
type Gateway interface {
	ListReferences(ctx context.Context, kind string) ([]client.ReferenceItem, error)
	Fetch(ctx context.Context, entity string, id uint, dest interface{}) error
	Submit(ctx context.Context, entity string, id uint, values url.Values) (*client.Envelope, error)
}

// form 三类配置表单的共同能力
type form interface {
	Validate(lookup configurator.Lookup) *configurator.Report
	Locate(collection string, id configurator.RowID) string
	Payload() (url.Values, error)
}

// Session 单个实体的编辑会话：持有表单、参考数据与提交状态
type Session struct {
	gateway Gateway
	kind    Kind
	locale  string

	mu           sync.Mutex
	id           uint
	refs         *configurator.References
	product      *configurator.ProductForm
	combo        *configurator.ComboForm
	promotion    *configurator.PromotionForm
	isSubmitting bool
	closed       bool
	report       *configurator.Report
	serverErrors map[string]string
	notices      []Notice
}

// NewSession 创建会话；id 为 0 表示新建
func NewSession(gateway Gateway, kind Kind, id uint, locale string) (*Session, error) {
	s := &Session{gateway: gateway, kind: kind, id: id, locale: locale, refs: &configurator.References{}}
	switch kind {
	case KindProduct:
		s.product = configurator.NewProductForm()
	case KindCombo:
		s.combo = configurator.NewComboForm()
	case KindPromotion:
		s.promotion = configurator.NewPromotionForm()
	default:
		return nil, ErrUnknownKind
	}
	return s, nil
}

// Open 加载参考数据；编辑已有实体时读取快照并回填表单
func (s *Session) Open(ctx context.Context) error {
	if s.isClosed() {
		return ErrSessionClosed
	}
	s.LoadReferences(ctx)
	s.mu.Lock()
	id := s.id
	s.mu.Unlock()
	if id == 0 {
		return nil
	}
	if err := s.hydrate(ctx, id); err != nil {
		logger.Warnw("editor_hydrate_failed", "kind", s.kind, "id", id, "error", err)
		s.notify(Notice{Level: NoticeError, Message: transportMessage(s.locale, err)})
		return err
	}
	return nil
}

// LoadReferences 并发刷新参考数据，失败的类别为空列表
func (s *Session) LoadReferences(ctx context.Context) *configurator.References {
	refs := loadReferences(ctx, s.gateway, referenceKinds(s.kind))
	s.mu.Lock()
	s.refs = refs
	s.mu.Unlock()
	return refs
}

func (s *Session) hydrate(ctx context.Context, id uint) error {
	switch s.kind {
	case KindProduct:
		var snap configurator.ProductSnapshot
		if err := s.gateway.Fetch(ctx, string(s.kind), id, &snap); err != nil {
			return err
		}
		f, err := configurator.HydrateProductForm(snap)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.product = f
		s.mu.Unlock()
	case KindCombo:
		var snap configurator.ComboSnapshot
		if err := s.gateway.Fetch(ctx, string(s.kind), id, &snap); err != nil {
			return err
		}
		f, err := configurator.HydrateComboForm(snap)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.combo = f
		s.mu.Unlock()
	case KindPromotion:
		var snap configurator.PromotionSnapshot
		if err := s.gateway.Fetch(ctx, string(s.kind), id, &snap); err != nil {
			return err
		}
		f, err := configurator.HydratePromotionForm(snap)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.promotion = f
		s.mu.Unlock()
	}
	return nil
}

// Product 商品表单；非商品会话返回 nil
func (s *Session) Product() *configurator.ProductForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product
}

// Combo 套餐表单
func (s *Session) Combo() *configurator.ComboForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.combo
}

// Promotion 活动表单
func (s *Session) Promotion() *configurator.PromotionForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promotion
}

// References 当前参考数据
func (s *Session) References() *configurator.References {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

// ID 实体 ID，新建成功后更新为服务端分配的 ID
func (s *Session) ID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Submitting 是否有提交在途
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSubmitting
}

// Report 最近一次本地校验结果
func (s *Session) Report() *configurator.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// FieldErrors 最近一次校验的错误：本地校验优先，其次为服务端返回
func (s *Session) FieldErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report != nil {
		locate := s.current().Locate
		s.report.Prune(locate)
		if s.report.Failed() {
			return s.report.Errors(locate)
		}
	}
	return s.serverErrors
}

// Notices 取出并清空待展示的提示
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// Close 关闭会话，在途提交的响应将被丢弃
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Submit 本地校验后提交；同一时刻只允许一个提交
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrSessionClosed
	}
	if s.isSubmitting {
		s.mu.Unlock()
		return 0, ErrSubmitInProgress
	}
	current := s.current()
	report := current.Validate(s.refs)
	s.report = report
	s.serverErrors = nil
	if report.Failed() {
		s.mu.Unlock()
		return OutcomeInvalid, nil
	}
	payload, err := current.Payload()
	if err != nil {
		s.mu.Unlock()
		logger.Errorw("editor_payload_encode_failed", "kind", s.kind, "error", err)
		s.notify(Notice{Level: NoticeError, Message: i18n.T(s.locale, "error.submit_failed")})
		return OutcomeFailed, nil
	}
	id := s.id
	s.isSubmitting = true
	s.mu.Unlock()

	env, err := s.gateway.Submit(ctx, string(s.kind), id, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isSubmitting = false
	if s.closed {
		logger.Debugw("editor_submit_discarded", "kind", s.kind, "id", id)
		return OutcomeDiscarded, nil
	}
	if err != nil {
		s.notices = append(s.notices, Notice{Level: NoticeError, Message: transportMessage(s.locale, err)})
		return OutcomeFailed, nil
	}
	if env == nil || !env.Success {
		message := i18n.T(s.locale, "error.submit_failed")
		if env != nil {
			if env.Message != "" {
				message = env.Message
			}
			s.serverErrors = env.Errors
		}
		s.notices = append(s.notices, Notice{Level: NoticeError, Message: message})
		return OutcomeRejected, nil
	}

	if id == 0 {
		var saved struct {
			ID uint `json:"id"`
		}
		if len(env.Data) > 0 && json.Unmarshal(env.Data, &saved) == nil && saved.ID > 0 {
			s.id = saved.ID
			s.setFormID(saved.ID)
		}
	}
	message := env.Message
	if message == "" {
		message = i18n.T(s.locale, "success.saved")
	}
	notice := Notice{Level: NoticeSuccess, Message: message, Warnings: env.Warnings}
	if len(env.Warnings) > 0 {
		notice.Level = NoticeWarning
	}
	s.notices = append(s.notices, notice)
	return OutcomeSaved, nil
}

// current 调用方需持有锁
func (s *Session) current() form {
	switch s.kind {
	case KindCombo:
		return s.combo
	case KindPromotion:
		return s.promotion
	}
	return s.product
}

func (s *Session) setFormID(id uint) {
	switch s.kind {
	case KindProduct:
		s.product.ID = id
	case KindCombo:
		s.combo.ID = id
	case KindPromotion:
		s.promotion.ID = id
	}
}

func (s *Session) notify(n Notice) {
	s.mu.Lock()
	s.notices = append(s.notices, n)
	s.mu.Unlock()
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// transportMessage 传输失败优先展示响应体中的 message
func transportMessage(locale string, err error) string {
	var transportErr *client.TransportError
	if errors.As(err, &transportErr) && transportErr.Message != "" {
		return transportErr.Message
	}
	return i18n.T(locale, "error.submit_failed")
}
