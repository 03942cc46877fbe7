// Package validation holds the pure row-level validation and normalization
// rules applied to every parsed CSV row before it is persisted.
package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/odhiambo-ed/ReUbuntu/models"
)

// FieldError describes a single failed check on one field of a row.
type FieldError struct {
	Field   string           `json:"field"`
	Type    models.ErrorType `json:"type"`
	Message string           `json:"message"`
}

// Result is the outcome of validating one row. IsValid holds exactly when
// Errors is empty.
type Result struct {
	IsValid bool
	Errors  []FieldError
}

// ValidConditions are the accepted raw condition spellings. "like new" is
// kept alongside "like_new" so either form passes before normalization.
var ValidConditions = []string{"new", "like_new", "like new", "good", "fair"}

// ValidCategories are the accepted category names, matched case-insensitively.
var ValidCategories = []string{
	"tops",
	"bottoms",
	"outerwear",
	"jackets",
	"dresses",
	"knitwear",
	"shoes",
	"accessories",
	"activewear",
}

var requiredFields = []struct {
	name    string
	message string
}{
	{"merchant_id", "Merchant ID is required"},
	{"sku", "SKU is required"},
	{"title", "Title is required"},
	{"category", "Category is required"},
	{"condition", "Condition is required"},
	{"original_price", "Original price is required"},
}

// ValidateRow runs every check independently and collects all failures, so
// one row can carry several errors at once. Value and format checks are
// skipped for blank fields: a blank condition reports only
// missing_required, never an additional invalid_value.
func ValidateRow(row models.RawRow, _ int) Result {
	var errs []FieldError

	for _, f := range requiredFields {
		if strings.TrimSpace(row.Get(f.name)) == "" {
			errs = append(errs, FieldError{
				Field:   f.name,
				Type:    models.ErrorTypeMissingRequired,
				Message: f.message,
			})
		}
	}

	if condition := strings.TrimSpace(row.Get("condition")); condition != "" {
		if !contains(ValidConditions, strings.ToLower(condition)) {
			errs = append(errs, FieldError{
				Field:   "condition",
				Type:    models.ErrorTypeInvalidValue,
				Message: "Condition must be one of: new, like_new, good, fair",
			})
		}
	}

	if category := strings.TrimSpace(row.Get("category")); category != "" {
		if !contains(ValidCategories, strings.ToLower(category)) {
			errs = append(errs, FieldError{
				Field:   "category",
				Type:    models.ErrorTypeInvalidValue,
				Message: "Category must be one of: " + strings.Join(ValidCategories, ", "),
			})
		}
	}

	if raw := strings.TrimSpace(row.Get("original_price")); raw != "" {
		// ParseFloat accepts "NaN" and "Inf"; neither is a storable price.
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
			errs = append(errs, FieldError{
				Field:   "original_price",
				Type:    models.ErrorTypeInvalidFormat,
				Message: "Original price must be a positive number",
			})
		}
	}

	// Quantity is never required; an absent quantity defaults downstream.
	if raw := strings.TrimSpace(row.Get("quantity")); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 1 {
			errs = append(errs, FieldError{
				Field:   "quantity",
				Type:    models.ErrorTypeInvalidFormat,
				Message: "Quantity must be a positive integer",
			})
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
