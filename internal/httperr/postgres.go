package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgForeignKey         = "23503"
	pgExclusionViolation = "23P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reconhece a violação da constraint de exclusão que
// impede dois agendamentos ativos sobrepostos para o mesmo barbeiro.
func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsForeignKeyViolation cobre tanto referência inexistente quanto remoção
// de linha ainda referenciada (ON DELETE RESTRICT).
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKey
}
