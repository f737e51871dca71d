package rl

// QTable is the learned value table: one row of action estimates per
// visited state bucket. Rows are materialized only when written, and a
// lookup of an absent key reads as the all-zero row.
type QTable struct {
	rows map[StateKey][NumActions]float64
}

func NewQTable() *QTable {
	return &QTable{
		rows: make(map[StateKey][NumActions]float64),
	}
}

// NewQTableFrom builds a table around previously persisted rows.
func NewQTableFrom(rows map[StateKey][NumActions]float64) *QTable {
	if rows == nil {
		rows = make(map[StateKey][NumActions]float64)
	}
	return &QTable{rows: rows}
}

// Row returns the action values for key without materializing it.
func (q *QTable) Row(key StateKey) [NumActions]float64 {
	return q.rows[key]
}

// Get returns the estimate for a single state/action pair.
func (q *QTable) Get(key StateKey, a Action) float64 {
	return q.rows[key][a]
}

// Set overwrites the estimate for a single state/action pair.
func (q *QTable) Set(key StateKey, a Action, val float64) {
	row := q.rows[key]
	row[a] = val
	q.rows[key] = row
}

// Max returns the largest action value for key.
func (q *QTable) Max(key StateKey) float64 {
	row := q.rows[key]
	max := row[0]
	for _, v := range row[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// BestAction returns the highest-valued action for key, the lowest index
// winning ties.
func (q *QTable) BestAction(key StateKey) Action {
	row := q.rows[key]
	best := Stay
	for i := 1; i < NumActions; i++ {
		if row[i] > row[best] {
			best = Action(i)
		}
	}
	return best
}

// Len reports the number of materialized rows.
func (q *QTable) Len() int {
	return len(q.rows)
}

// Snapshot copies the materialized rows for persistence.
func (q *QTable) Snapshot() map[StateKey][NumActions]float64 {
	out := make(map[StateKey][NumActions]float64, len(q.rows))
	for k, v := range q.rows {
		out[k] = v
	}
	return out
}
