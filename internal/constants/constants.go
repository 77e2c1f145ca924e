package constants

// 队列常量
const (
	QueueDefault          = "default"
	TaskNotificationEmail = "notification:email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sk"
)

// 商品目录业务常量
const (
	DefaultDeliveryTimeDays    = 7
	DefaultDiscountThreshold   = 10.0
	DefaultClearanceWindowDays = 12
)

// 通知结果常量
const (
	NotifyOutcomeSuccess = "success"
	NotifyOutcomeFailure = "failure"
)

// 日期与时间戳格式常量
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 03:04:05 PM"
)
