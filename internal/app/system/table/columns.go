package table

// Metric keys of the daily table.
const (
	KeyOrdersCount       = "orders_count"
	KeyOrdersAmount      = "orders_amount"
	KeyNetSales          = "net_sales"
	KeyAdvertising       = "advertising_spend"
	KeyLogistics         = "logistics_cost"
	KeyStorage           = "storage_cost"
	KeyCOGS              = "cogs"
	KeyTheoreticalProfit = "theoretical_profit"
)

// DailyColumns is the column catalogue of the per-day totals table.
func DailyColumns() []ColumnDef {
	return []ColumnDef{
		{Key: DateKey, Label: "Date", Kind: KindDate, Sortable: true, Width: 110, Align: AlignLeft},
		{Key: KeyOrdersCount, Label: "Orders", Kind: KindNumber, Sortable: true, Width: 80, Align: AlignRight},
		{Key: KeyOrdersAmount, Label: "Orders amount", Kind: KindNumber, Sortable: true, Width: 120, Align: AlignRight},
		{Key: KeyNetSales, Label: "Net sales", Kind: KindNumber, Sortable: true, Width: 120, Align: AlignRight},
		{Key: KeyAdvertising, Label: "Advertising", Kind: KindNumber, Sortable: true, Width: 110, Align: AlignRight},
		{Key: KeyLogistics, Label: "Logistics", Kind: KindNumber, Sortable: true, Width: 110, Align: AlignRight},
		{Key: KeyStorage, Label: "Storage", Kind: KindNumber, Sortable: true, Width: 100, Align: AlignRight},
		{Key: KeyCOGS, Label: "COGS", Kind: KindNumber, Sortable: true, Width: 110, Align: AlignRight},
		{Key: KeyTheoreticalProfit, Label: "Theoretical profit", Kind: KindNumber, Sortable: true, Colorize: true, Derived: true, Width: 140, Align: AlignRight},
	}
}
