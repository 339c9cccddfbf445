package seo

import "github.com/Emman-24/backendFlorist/pkg/db/models"

const pathRoot = "/products"

// PathForCategory returns /products/{category}.
func PathForCategory(category *models.Category) string {
	if category == nil {
		return pathRoot
	}
	return pathRoot + "/" + category.Route
}

// PathForSubCategory returns /products/{category}/{subcategory}. The parent
// category must be loaded.
func PathForSubCategory(sub *models.SubCategory) string {
	if sub == nil {
		return pathRoot
	}
	return PathForCategory(sub.Category) + "/" + sub.Route
}

// PathForProduct returns /products/{category}/{subcategory}/{slug}. Category
// and SubCategory must be loaded.
func PathForProduct(product *models.Product) string {
	if product == nil {
		return pathRoot
	}
	categoryRoute, subRoute := "", ""
	if product.Category != nil {
		categoryRoute = product.Category.Route
	}
	if product.SubCategory != nil {
		subRoute = product.SubCategory.Route
	}
	return pathRoot + "/" + categoryRoute + "/" + subRoute + "/" + product.Slug
}
