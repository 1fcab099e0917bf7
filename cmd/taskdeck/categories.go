package main

import (
	"flag"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/api"
)

func (a *app) cmdCategories(args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	printCategoryTable(a.cache.Categories(), a.cfg.UI.Color)
	return nil
}

func (a *app) cmdCategory(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck category add|edit|rm [options]")
	}

	switch args[0] {
	case "add":
		return a.cmdCategoryAdd(args[1:])
	case "edit":
		return a.cmdCategoryEdit(args[1:])
	case "rm":
		return a.cmdCategoryRemove(args[1:])
	default:
		return fmt.Errorf("usage: taskdeck category add|edit|rm [options]")
	}
}

func (a *app) cmdCategoryAdd(args []string) error {
	fs := flag.NewFlagSet("category add", flag.ContinueOnError)
	name := fs.String("name", "", "Category name")
	color := fs.String("color", "", "Category color (hex, e.g. #ff8800)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("usage: taskdeck category add -name <name> [-color <hex>]")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	category, err := a.cache.CreateCategory(api.CategoryRequest{Name: *name, Color: *color})
	if err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	fmt.Printf("Created category %s: %s\n", category.ID, category.Name)
	return nil
}

func (a *app) cmdCategoryEdit(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck category edit <id> [options]")
	}
	id := args[0]

	fs := flag.NewFlagSet("category edit", flag.ContinueOnError)
	name := fs.String("name", "", "New name")
	color := fs.String("color", "", "New color")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *name == "" && *color == "" {
		return fmt.Errorf("usage: taskdeck category edit <id> [-name <name>] [-color <hex>]")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	category, err := a.cache.UpdateCategory(id, api.CategoryRequest{Name: *name, Color: *color})
	if err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	fmt.Printf("Updated category %s: %s\n", category.ID, category.Name)
	return nil
}

func (a *app) cmdCategoryRemove(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskdeck category rm <id>")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.cache.DeleteCategory(args[0]); err != nil {
		return fmt.Errorf("%s", a.cache.Err())
	}

	fmt.Printf("Deleted category %s\n", args[0])
	return nil
}
