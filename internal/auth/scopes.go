package auth

// Known OAuth scopes used by the wrapped service.
const (
	ScopeWrappedWrite = "wrapped:write"
	ScopeWrappedRead  = "wrapped:read"
)
