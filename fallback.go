package storefront

// FallbackSupplier provides static substitute datasets when the remote
// service is unreachable. It only ever backs read paths; a failed cart
// mutation is never papered over with fallback data.
type FallbackSupplier interface {
	Products() []ProductSummary
	Categories() []Category
	Promotions() []Promotion
}

// StaticFallback is the built-in demo dataset.
type StaticFallback struct{}

// DefaultFallback returns the built-in demo dataset.
func DefaultFallback() FallbackSupplier { return StaticFallback{} }

func intPtr(v int64) *int64 { return &v }

// Products implements FallbackSupplier.
func (StaticFallback) Products() []ProductSummary {
	return []ProductSummary{
		{
			ID: 1, Name: "Wireless Earbuds Pro", Price: 2999, PromotionID: intPtr(1),
			CategoryID: 1, InStock: 25, Rating: 4.8, SoldCount: 156,
			ShortDescription: "Noise-cancelling wireless earbuds with 30-hour battery life",
			Tags:             []Tag{{ID: 1, Name: "Hot"}, {ID: 2, Name: "New"}},
		},
		{
			ID: 2, Name: "Smart Watch S7", Price: 8999,
			CategoryID: 2, InStock: 12, Rating: 4.6, SoldCount: 89,
			ShortDescription: "Health tracking, GPS, water resistant",
			Tags:             []Tag{{ID: 3, Name: "Limited"}},
		},
		{
			ID: 3, Name: "Wireless Charger", Price: 899, PromotionID: intPtr(1),
			CategoryID: 3, InStock: 0, Rating: 4.3, SoldCount: 234,
			ShortDescription: "Qi-compatible fast wireless charging pad",
		},
		{
			ID: 4, Name: "Mechanical Keyboard RGB", Price: 3599,
			CategoryID: 4, InStock: 8, Rating: 4.9, SoldCount: 67,
			ShortDescription: "RGB backlit mechanical keyboard with tactile switches",
			Tags:             []Tag{{ID: 4, Name: "Gaming"}, {ID: 1, Name: "Hot"}},
		},
		{
			ID: 5, Name: "4K Webcam", Price: 1599, PromotionID: intPtr(1),
			CategoryID: 5, InStock: 18, Rating: 4.4, SoldCount: 123,
			ShortDescription: "4K webcam with night vision for meetings and streaming",
			Tags:             []Tag{{ID: 5, Name: "4K"}},
		},
		{
			ID: 6, Name: "Portable Power Bank", Price: 1299,
			CategoryID: 6, InStock: 30, Rating: 4.5, SoldCount: 201,
			ShortDescription: "20000mAh power bank with USB-C fast charging",
		},
	}
}

// Categories implements FallbackSupplier.
func (StaticFallback) Categories() []Category {
	return []Category{
		{ID: 1, Name: "Audio"},
		{ID: 2, Name: "Wearables"},
		{ID: 3, Name: "Charging"},
		{ID: 4, Name: "Peripherals"},
		{ID: 5, Name: "Cameras"},
		{ID: 6, Name: "Mobile Accessories"},
	}
}

// Promotions implements FallbackSupplier.
func (StaticFallback) Promotions() []Promotion {
	return []Promotion{
		{ID: 1, Name: "Summer Sale", Description: "Selected accessories 20% off", DiscountRate: 0.2},
	}
}
