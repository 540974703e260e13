package handlers

import (
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"

	"app/database"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleListProducts lists non-deleted products with optional pagination.
// GET /api/products?page=1&pageSize=20
func HandleListProducts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_deleted = false").Scan(&totalItems); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to count products"})
	}
	pagination := utils.CreatePagination(totalItems, page, pageSize)

	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, p.supplier_id, p.is_deleted,
		       p.demand_count, p.last_demand_update, c.category_name, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_deleted = false
		ORDER BY p.name
		LIMIT $1 OFFSET $2
	`
	rows, err := db.Query(ctx, query, pagination.PageSize, (pagination.CurrentPage-1)*pagination.PageSize)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.SupplierID, &p.IsDeleted,
			&p.DemandCount, &p.LastDemandUpdate, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning product: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to scan product"})
		}
		products = append(products, p)
	}

	return c.JSON(fiber.Map{"success": true, "products": products, "pagination": pagination})
}

// HandleGetProduct returns one product by id.
// GET /api/products/:productId
func HandleGetProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")

	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, p.supplier_id, p.is_deleted,
		       p.demand_count, p.last_demand_update, c.category_name, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`
	var p models.Product
	err := database.GetDB().QueryRow(c.Context(), query, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.SupplierID, &p.IsDeleted,
		&p.DemandCount, &p.LastDemandUpdate, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Printf("Error fetching product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve product"})
	}

	return c.JSON(fiber.Map{"success": true, "product": p})
}

// HandleCreateProduct adds a catalog product.
// POST /api/products (admin)
func HandleCreateProduct(c *fiber.Ctx) error {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		CategoryID  *string `json:"category_id"`
		SupplierID  *string `json:"supplier_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if req.Name == "" || req.Price < 0 || req.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product fields"})
	}

	query := `
		INSERT INTO products (name, description, price, stock, category_id, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, price, stock, category_id, supplier_id, is_deleted, demand_count, last_demand_update, created_at, updated_at
	`
	var p models.Product
	err := database.GetDB().QueryRow(c.Context(), query,
		req.Name, req.Description, req.Price, req.Stock, req.CategoryID, req.SupplierID,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.SupplierID,
		&p.IsDeleted, &p.DemandCount, &p.LastDemandUpdate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": p})
}

// HandleUpdateProduct updates a catalog product.
// PUT /api/products/:productId (admin)
func HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		CategoryID  *string `json:"category_id"`
		SupplierID  *string `json:"supplier_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category_id = $5, supplier_id = $6, updated_at = NOW()
		WHERE id = $7 AND is_deleted = false
		RETURNING id, name, description, price, stock, category_id, supplier_id, is_deleted, demand_count, last_demand_update, created_at, updated_at
	`
	var p models.Product
	err := database.GetDB().QueryRow(c.Context(), query,
		req.Name, req.Description, req.Price, req.Stock, req.CategoryID, req.SupplierID, productID,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.SupplierID,
		&p.IsDeleted, &p.DemandCount, &p.LastDemandUpdate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		log.Printf("Error updating product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update product"})
	}

	return c.JSON(fiber.Map{"success": true, "product": p})
}

// HandleDeleteProduct soft-deletes a product so order history stays intact.
// DELETE /api/products/:productId (admin)
func HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")

	tag, err := database.GetDB().Exec(c.Context(),
		"UPDATE products SET is_deleted = true, updated_at = NOW() WHERE id = $1 AND is_deleted = false", productID)
	if err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete product"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}

// matchScore ranks how well a product name matches a search query on a
// 0-100 scale, case-insensitive. Exact, prefix and substring matches win
// outright; otherwise the best per-word edit-distance similarity decides.
func matchScore(name, query string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	query = strings.ToLower(strings.TrimSpace(query))
	if name == "" || query == "" {
		return 0
	}
	if name == query {
		return 100
	}
	if strings.HasPrefix(name, query) {
		return 90
	}
	if strings.Contains(name, query) {
		return 80
	}

	best := 0
	for _, word := range strings.Fields(name) {
		if score := wordScore(word, query); score > best {
			best = score
		}
	}
	return best
}

func wordScore(word, query string) int {
	maxLen := len(word)
	if len(query) > maxLen {
		maxLen = len(query)
	}
	d := utils.Levenshtein(word, query)
	score := int((1 - float64(d)/float64(maxLen)) * 100)
	// Partial containment between a word and the query is still a decent hit
	// even when the edit distance is large.
	if (strings.Contains(word, query) || strings.Contains(query, word)) && score < 70 {
		score = 70
	}
	return score
}

// searchCutoff is the minimum matchScore for a product to count as a result.
const searchCutoff = 50

// searchResultLimit caps how many matches a search returns; the top
// searchDemandTop of them count as demand signals.
const (
	searchResultLimit = 10
	searchDemandTop   = 3
)

// HandleSearchProducts finds products by fuzzy name match. Searching is a
// demand signal, so the best matches get their demand counters bumped. When
// nothing clears the cutoff the response carries the most demanded products
// as suggestions instead.
// GET /api/products/search?query=...
func HandleSearchProducts(c *fiber.Ctx) error {
	searchQuery := strings.TrimSpace(c.Query("query"))
	if searchQuery == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Search query is required"})
	}

	db := database.GetDB()
	ctx := c.Context()

	rows, err := db.Query(ctx, `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, p.supplier_id, p.is_deleted,
		       p.demand_count, p.last_demand_update, c.category_name, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_deleted = false
	`)
	if err != nil {
		log.Printf("Error querying products for search: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to search products"})
	}
	defer rows.Close()

	type scoredProduct struct {
		models.Product
		MatchScore int `json:"matchScore"`
	}
	matches := make([]scoredProduct, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.SupplierID, &p.IsDeleted,
			&p.DemandCount, &p.LastDemandUpdate, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning product: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to search products"})
		}
		if score := matchScore(p.Name, searchQuery); score > searchCutoff {
			matches = append(matches, scoredProduct{Product: p, MatchScore: score})
		}
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error reading products for search: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to search products"})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].MatchScore > matches[j].MatchScore })
	if len(matches) > searchResultLimit {
		matches = matches[:searchResultLimit]
	}

	if len(matches) == 0 {
		suggestions, err := topDemandedProducts(ctx, 5)
		if err != nil {
			log.Printf("Error fetching search suggestions: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to search products"})
		}
		return c.JSON(fiber.Map{"success": true, "products": matches, "suggestions": suggestions})
	}

	ids := make([]string, 0, searchDemandTop)
	for i := 0; i < len(matches) && i < searchDemandTop; i++ {
		ids = append(ids, matches[i].ID)
	}
	bumpDemand(ctx, ids, 1)

	return c.JSON(fiber.Map{"success": true, "products": matches})
}

// HandleGetRelatedProducts suggests products to show next to one the
// customer is viewing: same-category items first, falling back to the most
// demanded products overall.
// GET /api/products/related?productId=...&categoryId=...
func HandleGetRelatedProducts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	base := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, p.supplier_id, p.is_deleted,
		       p.demand_count, p.last_demand_update, c.category_name, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.is_deleted = false
	`

	var rows pgx.Rows
	var err error
	switch {
	case c.Query("productId") != "":
		rows, err = db.Query(ctx, base+`
			AND p.id <> $1
			AND p.category_id = (SELECT category_id FROM products WHERE id = $1)
			ORDER BY p.demand_count DESC, p.name
			LIMIT 5
		`, c.Query("productId"))
	case c.Query("categoryId") != "":
		rows, err = db.Query(ctx, base+`
			AND p.category_id = $1
			ORDER BY p.demand_count DESC, p.name
			LIMIT 5
		`, c.Query("categoryId"))
	default:
		rows, err = db.Query(ctx, base+`
			ORDER BY p.demand_count DESC, p.name
			LIMIT 5
		`)
	}
	if err != nil {
		log.Printf("Error querying related products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve related products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.SupplierID, &p.IsDeleted,
			&p.DemandCount, &p.LastDemandUpdate, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning related product: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve related products"})
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error reading related products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve related products"})
	}

	return c.JSON(fiber.Map{"success": true, "products": products})
}
