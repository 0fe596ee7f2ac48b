package ports

import "context"

// ProfileStore recupera a organização de um usuário a partir do email.
// Retorna ("", nil) quando o perfil não existe ou não tem organização;
// erros são reservados para falhas de infraestrutura.
type ProfileStore interface {
	OrganizationIDByEmail(ctx context.Context, email string) (string, error)
}
