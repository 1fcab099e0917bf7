package api

import "fmt"

// GetCategories returns the full category collection.
func (c *Client) GetCategories() ([]Category, error) {
	categories := make([]Category, 0)
	if err := c.Get("/categories", &categories); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new category.
func (c *Client) CreateCategory(req CategoryRequest) (*Category, error) {
	var category Category
	if err := c.Post("/categories", req, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category.
func (c *Client) UpdateCategory(id string, req CategoryRequest) (*Category, error) {
	var category Category
	if err := c.Put("/categories/"+id, req, &category); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return &category, nil
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(id string) error {
	if err := c.Delete("/categories/" + id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}
