package services

import "context"

// Action names an operation on the product resource.
type Action string

const (
	ActionList   Action = "product:list"
	ActionGet    Action = "product:get"
	ActionCreate Action = "product:create"
	ActionUpdate Action = "product:update"
	ActionDelete Action = "product:delete"
)

// Mutating reports whether the action changes the catalog.
func (a Action) Mutating() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// Authorizer decides whether the caller in ctx may perform an action.
// A non-nil error rejects the request.
type Authorizer interface {
	Authorize(ctx context.Context, action Action) error
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, action Action) error

func (f AuthorizerFunc) Authorize(ctx context.Context, action Action) error {
	return f(ctx, action)
}

// AllowAll performs no capability check. The catalog has no user model, so
// every route, including the admin ones, is open.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, Action) error { return nil }
