package models

// PriceSettingID is the document id of the per-session price.
const PriceSettingID = "classPrice"

// PriceSetting is the current price per session. Last write wins.
type PriceSetting struct {
	ID    string  `bson:"_id" json:"-"`
	Value float64 `bson:"value" json:"value"`
}
