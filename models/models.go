package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Core Models ---

// User represents an account in the system (admin or customer).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Category groups products for the catalog.
type Category struct {
	ID           string    `json:"id"`
	CategoryName string    `json:"categoryName"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Supplier provides products to the store.
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Product represents a catalog item tracked for stock and demand.
type Product struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Price            float64    `json:"price"`
	Stock            int        `json:"stock"`
	CategoryID       *string    `json:"category_id,omitempty"`
	SupplierID       *string    `json:"supplier_id,omitempty"`
	IsDeleted        bool       `json:"is_deleted"`
	DemandCount      int        `json:"demand_count"`
	LastDemandUpdate *time.Time `json:"last_demand_update,omitempty"`
	CategoryName     *string    `json:"category_name,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Order is a single customer purchase of one product.
type Order struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	ProductID    string    `json:"product_id"`
	Quantity     int       `json:"quantity"`
	TotalPrice   float64   `json:"total_price"`
	Status       string    `json:"status"`
	OrderDate    time.Time `json:"order_date"`
	ProductName  *string   `json:"product_name,omitempty"`
	CustomerName *string   `json:"customer_name,omitempty"`
}

// DashboardSummary is the admin overview payload.
type DashboardSummary struct {
	TotalProducts      int       `json:"totalProducts"`
	TotalStock         int       `json:"totalStock"`
	OrdersToday        int       `json:"ordersToday"`
	Revenue            float64   `json:"revenue"`
	OutOfStock         []Product `json:"outOfStock"`
	HighestSaleProduct *TopSale  `json:"highestSaleProduct,omitempty"`
	LowStock           []Product `json:"lowStock"`
}

// TopSale names the best-selling product and its total quantity sold.
type TopSale struct {
	Name          string `json:"name"`
	TotalQuantity int    `json:"totalQuantity"`
}

// ProductDemand is the demand analytics view of one product.
type ProductDemand struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	DemandCount      int        `json:"demandCount"`
	LastDemandUpdate *time.Time `json:"lastDemandUpdate,omitempty"`
	Stock            int        `json:"stock"`
	Price            float64    `json:"price"`
	Category         *string    `json:"category,omitempty"`
}

// DemandAlert flags a product whose predicted demand exceeds current stock.
// Urgency is the size of the shortfall.
type DemandAlert struct {
	ProductID          string  `json:"productId"`
	ProductName        string  `json:"productName"`
	PredictedDemand    float64 `json:"predictedDemand"`
	CurrentStock       int     `json:"currentStock"`
	RecommendedReorder int     `json:"recommendedReorder"`
	Urgency            float64 `json:"urgency"`
}
