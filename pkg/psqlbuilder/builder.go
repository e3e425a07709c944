package psqlbuilder

import (
	"github.com/Masterminds/squirrel"
)

// Builder построитель запросов с плейсхолдерами нужного диалекта
type Builder struct {
	squirrel.StatementBuilderType

	// RowLocks диалект поддерживает SELECT ... FOR UPDATE
	RowLocks bool
}

// Postgres построитель с плейсхолдерами $1, $2, ...
var Postgres = Builder{
	StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	RowLocks:             true,
}

// SQLite построитель с плейсхолдерами ?. Блокировки строк не нужны:
// sqlite держит блокировку записи на всю транзакцию.
var SQLite = Builder{
	StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
}

// ForDriver подбирает построитель по имени драйвера database/sql
func ForDriver(driver string) Builder {
	if driver == "sqlite" || driver == "sqlite3" {
		return SQLite
	}
	return Postgres
}
