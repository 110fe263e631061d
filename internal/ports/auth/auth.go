// Package auth define el puerto de identidad: quién es el criador detrás del request.
package auth

import (
	"context"
	"strings"
)

// Claims de un token verificado. UserID es el dueño de las mascotas.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

func (c Claims) HasUser() bool {
	return strings.TrimSpace(c.UserID) != ""
}

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
