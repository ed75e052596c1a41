package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"busfinder/internal/domain"
	"busfinder/internal/domain/models"
)

// BusRepository reads final_bus_details. It never writes.
type BusRepository struct {
	DB             *sql.DB
	CurrencyPrefix string
	QueryTimeout   time.Duration
}

func (r BusRepository) prefix() string {
	if r.CurrencyPrefix != "" {
		return r.CurrencyPrefix
	}
	return "INR "
}

func (r BusRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.QueryTimeout > 0 {
		return context.WithTimeout(ctx, r.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

// BuildSearchQuery translates c into the filtered SELECT. Every criteria
// value is passed as a bind argument; only fixed identifiers appear in the
// SQL text.
func BuildSearchQuery(c models.FilterCriteria, currencyPrefix string) (string, []any) {
	where := []string{
		fmt.Sprintf("LOWER(%s) = LOWER(?)", models.ColState),
		fmt.Sprintf("LOWER(%s) = LOWER(?)", models.ColFromPlace),
		fmt.Sprintf("LOWER(%s) = LOWER(?)", models.ColToPlace),
		fmt.Sprintf("%s >= ?", models.ColRating),
		fmt.Sprintf("STR_TO_DATE(%s, '%%H:%%i:%%s') > ?", models.ColDepartureTime),
		fmt.Sprintf("CAST(REPLACE(%s, ?, '') AS DECIMAL(10,2)) BETWEEN ? AND ?", models.ColTicketPrice),
	}
	args := []any{
		c.State,
		c.FromPlace,
		c.ToPlace,
		c.MinRating,
		c.Boundary(),
		currencyPrefix,
		c.Price.Min,
		c.Price.Max,
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`,
		strings.Join(models.ResultColumns, ", "),
		models.BusTable,
		strings.Join(where, " AND "),
	)
	return query, args
}

// Search runs the translated query once and returns the rows as stored.
func (r BusRepository) Search(ctx context.Context, c models.FilterCriteria) ([]models.BusRecord, error) {
	if r.DB == nil {
		return nil, domain.QueryExecutionError{Query: "search", Err: fmt.Errorf("database not connected")}
	}
	query, args := BuildSearchQuery(c, r.prefix())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.QueryExecutionError{Query: "search", Err: err}
	}
	defer rows.Close()

	out := []models.BusRecord{}
	for rows.Next() {
		var (
			name, busType, departure, arrival, price sql.NullString
			rec                                      models.BusRecord
		)
		if err := rows.Scan(&name, &busType, &departure, &arrival, &price, &rec.Rating); err != nil {
			return nil, domain.QueryExecutionError{Query: "search", Err: err}
		}
		rec.Name = name.String
		rec.Type = busType.String
		rec.DepartureTime = departure.String
		rec.ArrivalTime = arrival.String
		rec.TicketPrice = price.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.QueryExecutionError{Query: "search", Err: err}
	}
	return out, nil
}

// DistinctValues lists the distinct non-null values of one route column.
func (r BusRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	switch column {
	case models.ColState, models.ColFromPlace, models.ColToPlace:
	default:
		return nil, domain.ValidationError{Field: "column", Msg: fmt.Sprintf("%q is not an enumerated column", column)}
	}
	if r.DB == nil {
		return nil, domain.QueryExecutionError{Query: "distinct " + column, Err: fmt.Errorf("database not connected")}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s ORDER BY %s ASC`, column, models.BusTable, column)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.QueryExecutionError{Query: "distinct " + column, Err: err}
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, domain.QueryExecutionError{Query: "distinct " + column, Err: err}
		}
		if !v.Valid {
			continue
		}
		out = append(out, v.String)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.QueryExecutionError{Query: "distinct " + column, Err: err}
	}
	return out, nil
}

// LoadOptions reads all three enumerated domains.
func (r BusRepository) LoadOptions(ctx context.Context) (models.FormOptions, error) {
	var (
		opts models.FormOptions
		err  error
	)
	if opts.States, err = r.DistinctValues(ctx, models.ColState); err != nil {
		return models.FormOptions{}, err
	}
	if opts.FromPlaces, err = r.DistinctValues(ctx, models.ColFromPlace); err != nil {
		return models.FormOptions{}, err
	}
	if opts.ToPlaces, err = r.DistinctValues(ctx, models.ColToPlace); err != nil {
		return models.FormOptions{}, err
	}
	opts.Controls = models.DefaultControls
	opts.LoadedAt = time.Now().UTC()
	return opts, nil
}
