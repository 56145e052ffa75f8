package handler

import (
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/identity"
)

// UserHandler serves /users. Writes are restricted to admins by the router.
type UserHandler = CRUDHandler[identity.UserResponse, identity.RegisterRequest, identity.UpdateUserRequest]

// NewUserHandler creates a handler for user accounts
func NewUserHandler(service CRUDService[identity.UserResponse, identity.RegisterRequest, identity.UpdateUserRequest]) *UserHandler {
	return NewCRUDHandler(service,
		FilterParam{Name: "role"},
		FilterParam{Name: "isActive", Kind: FilterBool},
	)
}
