// Runs a SQL statement against the DB
//
//	When I run SQL "DELETE FROM devices" expect 0 row to be affected.
//
// Runs a SQL statement against the DB and check the results
//
//	And I run SQL "SELECT name, brand FROM devices WHERE id = ${device_id}" gives results:
//	  | name   | brand |
//	  | IPhone | Apple |
package cucumber

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
	"github.com/olekukonko/tablewriter"
)

func init() {
	StepModules = append(StepModules, func(ctx *godog.ScenarioContext, s *TestScenario) {
		ctx.Step(`^I run SQL "([^"]*)" expect (\d+) rows? to be affected\.$`, s.iRunSQLExpectRowToBeAffected)
		ctx.Step(`^I run SQL "([^"]*)"$`, s.iRunSQL)
		ctx.Step(`^I run SQL "([^"]*)" gives results:$`, s.iRunSQLGivesResults)
	})
}

func (s *TestScenario) exec(sql string) (int64, error) {
	if s.Suite.DB == nil {
		return 0, fmt.Errorf("the test suite has no database")
	}
	sql, err := s.Expand(sql)
	if err != nil {
		return 0, err
	}
	result := s.Suite.DB.WithContext(s.Suite.Context).Exec(sql)
	return result.RowsAffected, result.Error
}

func (s *TestScenario) iRunSQL(sql string) error {
	_, err := s.exec(sql)
	return err
}

func (s *TestScenario) iRunSQLExpectRowToBeAffected(sql string, expected int64) error {
	affected, err := s.exec(sql)
	if err != nil {
		return err
	}
	if affected != expected {
		return fmt.Errorf("expected %d rows to be affected but %d were affected", expected, affected)
	}
	return nil
}

func (s *TestScenario) iRunSQLGivesResults(sql string, expected *godog.Table) (err error) {
	if s.Suite.DB == nil {
		return fmt.Errorf("the test suite has no database")
	}
	sql, err = s.Expand(sql)
	if err != nil {
		return err
	}

	rows, err := s.Suite.DB.WithContext(s.Suite.Context).Raw(sql).Rows()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); err == nil {
			err = cerr
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	actualTable := [][]string{cols}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		pointers := make([]interface{}, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return err
		}

		row := make([]string, len(values))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = fmt.Sprintf("%v", v)
		}
		actualTable = append(actualTable, row)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	expectedTable := GodogTableToStringTable(expected)
	if !reflect.DeepEqual(expectedTable, actualTable) {
		return fmt.Errorf("actual does not match expected, diff:\n%s",
			diff(StringTableToCucumberTable(expectedTable), StringTableToCucumberTable(actualTable)))
	}
	return nil
}

func GodogTableToStringTable(table *godog.Table) [][]string {
	data := make([][]string, len(table.Rows))
	for r, row := range table.Rows {
		data[r] = make([]string, len(row.Cells))
		for c, cell := range row.Cells {
			data[r][c] = cell.Value
		}
	}
	return data
}

func StringTableToCucumberTable(data [][]string) string {
	buf := &strings.Builder{}
	table := tablewriter.NewWriter(buf)
	table.SetBorders(tablewriter.Border{
		Left:   true,
		Right:  true,
		Top:    false,
		Bottom: false,
	})
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(data)
	table.Render()
	return buf.String()
}
