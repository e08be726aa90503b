package constants

// 上下文键常量
const (
	ContextKeyRequestID = "request_id"
	ContextKeyAdminID   = "admin_id"
	ContextKeyLocale    = "locale"
	HeaderRequestID     = "X-Request-ID"
)

// 适用对象常量（与 configurator.ApplicationType 一致）
const (
	ApplicationTypeProducts   = "products"
	ApplicationTypeCategories = "categories"
	ApplicationTypeCombos     = "combos"
	ApplicationTypeOrders     = "orders"
)

// 参考数据类型常量
const (
	ReferenceProducts   = "products"
	ReferenceCategories = "categories"
	ReferenceBranches   = "branches"
	ReferenceTimeSlots  = "time-slots"
	ReferenceSuppliers  = "suppliers"
	ReferenceCombos     = "combos"
	ReferenceUnits      = "units"
)

// 队列常量
const (
	QueueDefault        = "default"
	QueueAudit          = "audit"
	TaskComboStockAudit = "combo:stock_audit"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ck"
	CacheKeyReference  = "reference"
	CacheKeySubmitRate = "submit_rate"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
	LocaleViVN = "vi-VN"
)

// SupportedLocales 支持的语言（首项为默认语言）
var SupportedLocales = []string{LocaleZhCN, LocaleEnUS, LocaleViVN}
