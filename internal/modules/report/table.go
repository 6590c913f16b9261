package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
)

// Table is a report flattened into ordered columns and string cells, ready
// for spreadsheet or document export.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// WriteCSV writes the header and all rows.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func (r *LowStockReport) Table() Table {
	t := Table{Columns: []string{"product_id", "sku", "name", "category", "quantity", "low_stock_threshold", "shortfall"}}
	for _, row := range r.Items {
		t.Rows = append(t.Rows, []string{
			row.ProductID.String(), row.SKU, row.Name, row.Category,
			strconv.Itoa(row.Quantity), strconv.Itoa(row.LowStockThreshold), strconv.Itoa(row.Shortfall),
		})
	}
	return t
}

// Table lists every product; the last row carries the grand total.
func (r *InventoryReport) Table() Table {
	t := Table{Columns: []string{"product_id", "sku", "name", "category", "price", "quantity", "value"}}
	for _, row := range r.Products {
		t.Rows = append(t.Rows, []string{
			row.ProductID.String(), row.SKU, row.Name, row.Category,
			row.Price.StringFixed(2), strconv.Itoa(row.Quantity), row.Value.StringFixed(2),
		})
	}
	t.Rows = append(t.Rows, []string{"", "", "TOTAL", "", "", "", r.TotalValue.StringFixed(2)})
	return t
}

func (r *CategoryReport) Table() Table {
	t := Table{Columns: []string{"name", "registered", "product_count", "stock_value"}}
	for _, row := range r.Categories {
		t.Rows = append(t.Rows, []string{
			row.Name, strconv.FormatBool(row.Registered), strconv.Itoa(row.ProductCount), row.StockValue.StringFixed(2),
		})
	}
	return t
}

// ActivityTable flattens ledger entries.
func ActivityTable(entries []*activity.Entry) Table {
	t := Table{Columns: []string{"timestamp", "product_id", "product_name", "action", "quantity_change", "admin_email"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.Timestamp.Format(time.RFC3339), e.ProductID.String(), e.ProductName,
			string(e.Action), strconv.Itoa(e.QuantityChange), e.AdminEmail,
		})
	}
	return t
}
