package order

// Product is read-only catalog reference data. Prices stay formatted
// strings because every report echoes them verbatim to the customer.
type Product struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	SKU      string `json:"sku"`
	Category string `json:"category"`
}

// Catalog is the fixed product set orders are synthesized from.
var Catalog = map[string]Product{
	"DRILL": {
		Name:     "DeWalt 20V MAX Cordless Drill/Driver Kit",
		Price:    "$149.99",
		SKU:      "DCD778C2",
		Category: "Power Tools",
	},
	"DOOR": {
		Name:     "36 in. x 80 in. Craftsman 6-Lite Prefinished Mahogany Front Door",
		Price:    "$499.99",
		SKU:      "HDPFD6MH36",
		Category: "Doors & Windows",
	},
	"PLANT": {
		Name:     "10 in. Monstera Deliciosa Indoor Plant in Decorative Planter",
		Price:    "$49.99",
		SKU:      "MONSPLNT10",
		Category: "Garden Center",
	},
	"SAW": {
		Name:     "RYOBI 10 in. 15 Amp Table Saw",
		Price:    "$299.99",
		SKU:      "RTS12",
		Category: "Power Tools",
	},
	"LIGHT": {
		Name:     "Hampton Bay 52 in. LED Indoor Brushed Nickel Ceiling Fan with Light",
		Price:    "$129.99",
		SKU:      "CF52BN",
		Category: "Lighting",
	},
}

// catalogKeys lists Catalog keys in a fixed order so random selection is
// reproducible under a seeded source.
var catalogKeys = []string{"DOOR", "DRILL", "LIGHT", "PLANT", "SAW"}
