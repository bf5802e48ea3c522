package dto

// AppendEntryRequest is the JSON body for a manual ledger append. Price is a
// decimal string to avoid float rounding on the wire.
type AppendEntryRequest struct {
	ItemName *string `json:"item_name"`
	Kind     string  `json:"kind" validate:"required,oneof=stock_order sale"`
	Units    *int64  `json:"units" validate:"omitempty,gte=0"`
	Price    string  `json:"price" validate:"required"`
	Date     string  `json:"entry_date"`
}

// AppendEntryResponse carries the id assigned on commit.
type AppendEntryResponse struct {
	ID int64 `json:"id"`
}
