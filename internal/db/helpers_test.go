package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMissingColumns(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("final_bus_details").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("final_bus_details"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("final_bus_details", "StateName").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("StateName"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("final_bus_details", "BusRating").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	missing, err := MissingColumns(context.Background(), conn, "final_bus_details", []string{"StateName", "BusRating"})
	if err != nil {
		t.Fatalf("MissingColumns error: %v", err)
	}
	if len(missing) != 1 || missing[0] != "BusRating" {
		t.Fatalf("missing = %v", missing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMissingColumnsNoTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("final_bus_details").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	missing, err := MissingColumns(context.Background(), conn, "final_bus_details", []string{"StateName", "To_Place"})
	if err != nil {
		t.Fatalf("MissingColumns error: %v", err)
	}
	if len(missing) != 2 {
		t.Fatalf("expected every column missing, got %v", missing)
	}
}

func TestHasTablePropagatesDriverError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	boom := errors.New("connection refused")
	mock.ExpectQuery("information_schema\\.tables").WillReturnError(boom)

	if _, err := HasTable(context.Background(), conn, "final_bus_details"); !errors.Is(err, boom) {
		t.Fatalf("expected driver error, got %v", err)
	}
}
