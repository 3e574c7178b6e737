package auth

import "context"

// Claims es la información extraída de un token válido.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
