package catalog

import "github.com/shopspring/decimal"

// DefaultProducts is the stock watch catalog the store opens with.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Chrono Master",
			Brand:       "Tick-Tock",
			Price:       decimal.NewFromInt(2499),
			Description: "The Chrono Master is a precision timepiece crafted with Swiss movement and a sapphire crystal face. Water-resistant to 100 meters with a genuine leather strap.",
			Features:    []string{"Swiss movement", "Sapphire crystal", "Water-resistant to 100m", "Leather strap", "Luminous hands"},
			ImageURL:    "https://images.unsplash.com/photo-1523170335258-f5ed11844a49?q=80&w=1180&auto=format&fit=crop",
			InStock:     true,
			Category:    "luxury",
		},
		{
			ID:          "2",
			Name:        "Diver Pro",
			Brand:       "AquaTime",
			Price:       decimal.NewFromInt(1899),
			Description: "Designed for underwater adventures, the Diver Pro features a unidirectional rotating bezel and is water-resistant to 300 meters. The stainless steel case ensures durability.",
			Features:    []string{"Rotating bezel", "Water-resistant to 300m", "Stainless steel case", "Rubber strap", "Screw-down crown"},
			ImageURL:    "https://images.unsplash.com/photo-1533139502658-0198f920d8e8?q=80&w=1742&auto=format&fit=crop",
			InStock:     true,
			Category:    "sport",
		},
		{
			ID:          "3",
			Name:        "Classic Slim",
			Brand:       "Tick-Tock",
			Price:       decimal.NewFromInt(1299),
			Description: "An elegant dress watch with a slim profile, perfect for formal occasions. Features a Japanese quartz movement and a genuine alligator leather strap.",
			Features:    []string{"Japanese quartz movement", "Ultra-slim design", "Alligator leather", "Sapphire crystal", "Date display"},
			ImageURL:    "https://images.unsplash.com/photo-1612817159949-195b6eb9e31a?q=80&w=1180&auto=format&fit=crop",
			InStock:     true,
			Category:    "dress",
		},
		{
			ID:          "4",
			Name:        "Smart Chrono",
			Brand:       "TechTime",
			Price:       decimal.NewFromInt(3499),
			Description: "A hybrid smartwatch that combines traditional craftsmanship with modern technology. Tracks fitness metrics and provides notifications without sacrificing style.",
			Features:    []string{"Step tracking", "Sleep monitoring", "Notification alerts", "Heart rate monitor", "7-day battery life"},
			ImageURL:    "https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?q=80&w=1027&auto=format&fit=crop",
			InStock:     false,
			Category:    "smart",
		},
		{
			ID:          "5",
			Name:        "Vintage Automatic",
			Brand:       "Heritage",
			Price:       decimal.NewFromInt(4299),
			Description: "A timeless automatic watch inspired by designs from the 1960s. Features a visible movement through the exhibition caseback and comes with a polished mesh bracelet.",
			Features:    []string{"Automatic movement", "Exhibition caseback", "Mesh bracelet", "Domed crystal", "Small seconds subdial"},
			ImageURL:    "https://images.unsplash.com/photo-1539874754764-5a96559165b0?q=80&w=1180&auto=format&fit=crop",
			InStock:     true,
			Category:    "luxury",
		},
		{
			ID:          "6",
			Name:        "Explorer GMT",
			Brand:       "AquaTime",
			Price:       decimal.NewFromInt(2799),
			Description: "The perfect travel companion with dual time zone functionality. The robust construction and legible dial make it suitable for adventures worldwide.",
			Features:    []string{"GMT function", "Anti-magnetic case", "Super-LumiNova indices", "Screw-down crown", "48-hour power reserve"},
			ImageURL:    "https://images.unsplash.com/photo-1547996160-81dfa63595aa?q=80&w=1287&auto=format&fit=crop",
			InStock:     true,
			Category:    "sport",
		},
	}
}
