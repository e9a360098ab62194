package main

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/olekukonko/tablewriter"
)

const (
	encodeJsonRaw    = "json-raw"
	encodeJsonPretty = "json"
	encodeNoHeader   = "no-header"
	encodeColumn     = "column"
)

const LocalTimeFormat = "2006-01-02 15:04:05 MST"

type TableField struct {
	Header    string
	Field     string
	Formatter func(item interface{}) string
}

func validateOutput(output string) error {
	switch output {
	case encodeJsonRaw, encodeJsonPretty, encodeNoHeader, encodeColumn:
		return nil
	}
	return fmt.Errorf("unknown --output option: %s", output)
}

func showOutput(w io.Writer, output string, fields []TableField, result any) error {
	switch output {
	case encodeJsonPretty:
		bytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode the ctl output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(bytes))
		return err

	case encodeJsonRaw:
		bytes, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode the ctl output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(bytes))
		return err

	case encodeColumn, encodeNoHeader:
		table := tablewriter.NewWriter(w)
		table.SetBorders(tablewriter.Border{
			Left:   true,
			Right:  true,
			Top:    false,
			Bottom: false,
		})
		table.SetAutoWrapText(false)

		if output != encodeNoHeader {
			var headers []string
			for _, field := range fields {
				headers = append(headers, field.Header)
			}
			table.SetHeader(headers)
		}

		itemsValue := reflect.ValueOf(result)
		if !itemsValue.IsValid() || (itemsValue.Kind() == reflect.Pointer || itemsValue.Kind() == reflect.Slice) && itemsValue.IsNil() {
			table.Render()
			return nil
		}
		// if the itemsValue is not a slice, lets turn it into one.
		if itemsValue.Kind() != reflect.Slice {
			itemsValue = reflect.Append(reflect.MakeSlice(reflect.SliceOf(itemsValue.Type()), 0, 1), itemsValue)
		}
		for i := 0; i < itemsValue.Len(); i++ {
			itemValue := itemsValue.Index(i)
			var line []string
			for _, field := range fields {
				switch {
				case field.Formatter != nil:
					line = append(line, field.Formatter(itemValue.Interface()))
				case field.Field != "":
					for itemValue.Kind() == reflect.Pointer {
						itemValue = itemValue.Elem()
					}
					fieldValue := itemValue.FieldByName(field.Field)
					if !fieldValue.IsValid() {
						return fmt.Errorf("field %s not found", field.Field)
					}
					line = append(line, fieldFormatter(fieldValue))
				default:
					return fmt.Errorf("TableField.Formatter or TableField.Field must be set")
				}
			}
			table.Append(line)
		}
		table.Render()
		return nil
	default:
		return fmt.Errorf("unknown --output option: %s", output)
	}
}

func fieldFormatter(itemValue reflect.Value) string {
	switch itemValue.Kind() {
	case reflect.Invalid:
		return ""
	case reflect.Pointer:
		if itemValue.IsNil() {
			return ""
		}
		return fieldFormatter(itemValue.Elem())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", itemValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", itemValue.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%f", itemValue.Float())
	case reflect.Bool:
		return fmt.Sprintf("%v", itemValue.Bool())
	case reflect.String:
		return itemValue.String()
	default:
		item := itemValue.Interface()
		switch item := item.(type) {
		case []byte:
			return string(item)
		case time.Time:
			return item.Local().Format(LocalTimeFormat)
		}
		bytes, err := json.MarshalIndent(item, "", " ")
		if err != nil {
			return fmt.Sprintf("%v", item)
		}
		return string(bytes)
	}
}
