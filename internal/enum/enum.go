package enum

// ── Group A: CHECK constrained in DB ──

const (
	OrderTypeTable    = "table"
	OrderTypeTakeaway = "takeaway"
)

const (
	UserRoleOwner   = "OWNER"
	UserRoleCashier = "CASHIER"
)

// ── Group B: Query filters (no DB constraint) ──

const (
	OrderStatusOpen   = "open"
	OrderStatusClosed = "closed"
)
