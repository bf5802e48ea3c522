package dto

// ReorderRequest asks the planner whether an item needs replenishing. Date is
// optional; malformed or missing values fall back to the current date.
type ReorderRequest struct {
	ItemName       string `json:"item_name" validate:"required"`
	QuantityNeeded int64  `json:"quantity_needed" validate:"required,gt=0"`
	Date           string `json:"date"`
}
