package constants

// 订单状态常量
const (
	OrderStatusPending              = "pending"
	OrderStatusAwaitingVerification = "awaiting_verification"
	OrderStatusPreApproved          = "pre_approved"
	OrderStatusPreparing            = "preparing"
	OrderStatusPicking              = "picking"
	OrderStatusShipping             = "shipping"
	OrderStatusDelivered            = "delivered"
	OrderStatusReturned             = "returned"
	OrderStatusConfirmed            = "confirmed"
	OrderStatusCancelled            = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusUnpaid              = "unpaid"
	PaymentStatusPendingVerification = "pending_verification"
	PaymentStatusPartial             = "partial"
	PaymentStatusVerified            = "verified"
	PaymentStatusApproved            = "approved"
	PaymentStatusPaid                = "paid"
	PaymentStatusPreApproved         = "pre_approved"
)

// 支付方式常量
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodTransfer = "transfer"
	PaymentMethodPayAfter = "pay_after"
)

// 员工角色常量
const (
	RoleSuperAdmin   = "super_admin"
	RoleAdminControl = "admin_control"
	RoleBackoffice   = "backoffice"
	RoleFinance      = "finance"
	RoleSale         = "sale"
	RoleWarehouse    = "warehouse"
)

// 队列常量
const (
	QueueDefault            = "default"
	TaskOrderVerifiedNotify = "order:verified_notify"
	TaskDebtReminder        = "debt:payment_reminder"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sd"
)

// 币种常量
const (
	SiteCurrencyDefault = "THB"
)

// 站点语言常量
const (
	LocaleThTH = "th-TH"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleThTH, LocaleEnUS}
