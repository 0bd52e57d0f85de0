package storage

import (
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain"
)

// SampleProducts is the demonstration catalog loaded into an empty store
func SampleProducts() []domain.Product {
	return []domain.Product{
		{SKU: "LAP001", Name: "Dell Latitude Laptop", Category: "Electronics", Quantity: 25, Price: decimal.RequireFromString("899.99"), MinStock: 10, Description: "Business laptop with Intel i7 processor"},
		{SKU: "PHN001", Name: "iPhone 15 Pro", Category: "Electronics", Quantity: 8, Price: decimal.RequireFromString("999.99"), MinStock: 15, Description: "Latest iPhone with advanced camera system"},
		{SKU: "TSH001", Name: "Cotton T-Shirt", Category: "Clothing", Quantity: 150, Price: decimal.RequireFromString("19.99"), MinStock: 50, Description: "Comfortable cotton t-shirt in various sizes"},
		{SKU: "SHO001", Name: "Nike Running Shoes", Category: "Sports", Quantity: 5, Price: decimal.RequireFromString("129.99"), MinStock: 20, Description: "Professional running shoes with cushioning"},
		{SKU: "BOK001", Name: "JavaScript Programming", Category: "Books", Quantity: 12, Price: decimal.RequireFromString("49.99"), MinStock: 8, Description: "Comprehensive guide to JavaScript programming"},
		{SKU: "CAR001", Name: "Car Air Freshener", Category: "Automotive", Quantity: 75, Price: decimal.RequireFromString("8.99"), MinStock: 30, Description: "Long-lasting car air freshener"},
	}
}
