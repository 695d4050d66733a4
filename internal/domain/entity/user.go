package entity

import "time"

// Módulos do painel controlados por permissão. Admin acessa todos.
const (
	PermissionProducts           = "products"
	PermissionFabrics            = "fabrics"
	PermissionCustomerPanel      = "customer_panel"
	PermissionFiscal             = "fiscal"
	PermissionAccountsReceivable = "accounts_receivable"
)

// KnownPermissions módulos válidos, na ordem de exibição do painel.
var KnownPermissions = []string{
	PermissionProducts,
	PermissionFabrics,
	PermissionCustomerPanel,
	PermissionFiscal,
	PermissionAccountsReceivable,
}

// User um usuário do painel.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca em claro depois de persistido
	IsAdmin      bool
	Permissions  []string // módulos liberados; vazio para admin (acessa tudo)
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPermission indica se o usuário acessa o módulo. Admin acessa todos.
func (u *User) HasPermission(module string) bool {
	if u.IsAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == module {
			return true
		}
	}
	return false
}
