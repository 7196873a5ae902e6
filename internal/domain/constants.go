package domain

const (
	RoleAdmin = "ADMIN"
)

// Payment record statuses.
const (
	PaymentInitialized = "initialized"
	PaymentSuccess     = "success"
	PaymentFailed      = "failed"
)

// Gateway webhook event types.
const (
	EventChargeSuccess = "charge.success"
	EventChargeFailed  = "charge.failed"
)

const (
	CategoryBeginner     = "beginner"
	CategoryIntermediate = "intermediate"
	CategoryAdvanced     = "advanced"
)

// Notification kinds recorded in the delivery log.
const (
	NotificationRegistrationConfirmed = "REGISTRATION_CONFIRMED"
	NotificationPaymentRetry          = "PAYMENT_RETRY"
)

const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

const ProviderPaystack = "paystack"

// SettingRegistrationFee overrides the configured registration fee (minor units).
const SettingRegistrationFee = "registration_fee_minor"
