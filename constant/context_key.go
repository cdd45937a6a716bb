package constant

type ContextKey string

const (
	ContextKeyUserId    ContextKey = "user_id"
	ContextKeyUserRole  ContextKey = "user_role"
	ContextKeyUsername  ContextKey = "username"
	ContextKeyRequestId ContextKey = "request_id"
)
