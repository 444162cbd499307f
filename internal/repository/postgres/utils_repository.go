package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	// uniqueViolation - SQLSTATE нарушения уникального ограничения
	uniqueViolation = "23505"

	// coordinateTolerance - допуск при сравнении координат (примерно 10 см)
	coordinateTolerance = 1e-6
)

// isUniqueViolation распознаёт ошибку уникальности от обоих драйверов:
// pgx в рабочем окружении и lib/pq в тестовой обвязке
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
