package sqlite

// taskColumns is the column list every task query selects, in ScanTask order.
const taskColumns = `seq, id, name, status, description`

// Scanner is the Scan half of *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Rows is the iteration surface of *sql.Rows.
type Rows interface {
	Scanner
	Next() bool
	Err() error
}

// ScanTask reads one row selected with taskColumns.
func ScanTask(s Scanner) (*TaskRow, error) {
	var row TaskRow
	if err := s.Scan(&row.Seq, &row.ID, &row.Name, &row.Status, &row.Description); err != nil {
		return nil, err
	}
	return &row, nil
}

// ScanTasks drains rows in order. Iteration errors discard partial results.
func ScanTasks(rows Rows) ([]*TaskRow, error) {
	return scanAll(rows, ScanTask)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
