package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/catalogkit/internal/config"

	"github.com/ecodeclub/ekit/net/httpx"
)

const (
	adminPrefix       = "/api/v1/admin"
	referencePageSize = 200
	// 参考数据分页上限，防止服务端 total 异常时无限翻页
	maxReferencePages = 50
)

// ErrEmptyResponse 响应体为空或无法解析
var ErrEmptyResponse = errors.New("empty response")

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// Envelope 管理端统一响应
type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       json.RawMessage   `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Warnings   map[string]string `json:"warnings,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
}

// ReferenceItem 参考数据条目
type ReferenceItem struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
	Stock  *int64 `json:"stock,omitempty"`
}

// TransportError 请求未得到业务响应（网络错误、鉴权失败、服务端异常）
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transport error (status %d): %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPGateway 通过管理端 API 读写配置
type HTTPGateway struct {
	baseURL string
	token   string
	locale  string
	client  *http.Client
}

// NewHTTPGateway 创建网关
func NewHTTPGateway(cfg config.ConsoleConfig, locale string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/"),
		token:   strings.TrimSpace(cfg.Token),
		locale:  locale,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

// ListReferences 拉取某类参考数据的全部启用项
func (g *HTTPGateway) ListReferences(ctx context.Context, kind string) ([]ReferenceItem, error) {
	endpoint := g.baseURL + adminPrefix + "/references/" + url.PathEscape(kind)
	items := make([]ReferenceItem, 0)
	for page := 1; page <= maxReferencePages; page++ {
		env, err := g.get(ctx, endpoint, map[string]string{
			"page":      strconv.Itoa(page),
			"page_size": strconv.Itoa(referencePageSize),
		})
		if err != nil {
			return nil, err
		}
		var batch []ReferenceItem
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &batch); err != nil {
				return nil, err
			}
		}
		items = append(items, batch...)
		if len(batch) == 0 || env.Pagination == nil || int64(len(items)) >= env.Pagination.Total {
			break
		}
	}
	return items, nil
}

// Fetch 读取单个实体的编辑快照到 dest
func (g *HTTPGateway) Fetch(ctx context.Context, entity string, id uint, dest interface{}) error {
	endpoint := fmt.Sprintf("%s%s/%s/%d", g.baseURL, adminPrefix, url.PathEscape(entity), id)
	env, err := g.get(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return ErrEmptyResponse
	}
	return json.Unmarshal(env.Data, dest)
}

// Submit 表单提交：id 为 0 时 POST 创建，否则 PUT 更新
// success:false 属于业务失败，随 Envelope 返回；其余失败返回 TransportError
func (g *HTTPGateway) Submit(ctx context.Context, entity string, id uint, values url.Values) (*Envelope, error) {
	method := http.MethodPost
	endpoint := fmt.Sprintf("%s%s/%s", g.baseURL, adminPrefix, url.PathEscape(entity))
	if id > 0 {
		method = http.MethodPut
		endpoint = fmt.Sprintf("%s/%d", endpoint, id)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	g.decorate(req.Header)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: err}
	}

	var env Envelope
	decodeErr := json.Unmarshal(body, &env)
	if isDomainStatus(resp.StatusCode) && decodeErr == nil {
		return &env, nil
	}
	if decodeErr != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: ErrEmptyResponse}
	}
	return nil, &TransportError{Status: resp.StatusCode, Message: env.Message}
}

func (g *HTTPGateway) get(ctx context.Context, endpoint string, params map[string]string) (*Envelope, error) {
	req := httpx.NewRequest(ctx, http.MethodGet, endpoint).Client(g.client)
	if g.token != "" {
		req = req.AddHeader("Authorization", "Bearer "+g.token)
	}
	if g.locale != "" {
		req = req.AddHeader("Accept-Language", g.locale)
	}
	for key, value := range params {
		req = req.AddParam(key, value)
	}
	resp := req.Do()
	if resp.Response != nil && resp.Body != nil {
		defer resp.Body.Close()
	}

	var env Envelope
	if err := resp.JSONScan(&env); err != nil {
		status := 0
		if resp.Response != nil {
			status = resp.StatusCode
		}
		return nil, &TransportError{Status: status, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return nil, &TransportError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

func (g *HTTPGateway) decorate(header http.Header) {
	if g.token != "" {
		header.Set("Authorization", "Bearer "+g.token)
	}
	if g.locale != "" {
		header.Set("Accept-Language", g.locale)
	}
	header.Set("Accept", "application/json")
}

// isDomainStatus 服务端以 200 或 422 返回业务结果（含 success:false）
func isDomainStatus(status int) bool {
	return status == http.StatusOK || status == http.StatusUnprocessableEntity
}
