package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/client/models"
)

var kindOptions = []api.Option{
	{Value: "object", Label: "Oggetto"},
	{Value: "service", Label: "Servizio"},
}

// MaxImages is how many pictures an object listing may carry.
const MaxImages = 3

// Near lists active items around the current location, nearest first.
func (a *App) Near(ctx context.Context, args []string) error {
	radius := 0
	if len(args) > 0 {
		r, err := strconv.Atoi(strings.TrimSuffix(args[0], "m"))
		if err != nil || r <= 0 {
			a.println("Usage: near [radius in meters]")
			return nil
		}
		radius = r
	}

	res, err := a.market.Nearby(ctx, a.location(), radius)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(res.Items) == 0 {
		a.printf("Nothing within %dm of %s\n", res.Radius, a.location())
		return nil
	}
	a.printf("%d items within %dm:\n", len(res.Items), res.Radius)
	for _, it := range res.Items {
		a.println(formatItemLine(it))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: show <id>")
		return nil
	}
	it, err := a.market.Show(ctx, args[0])
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("%s", formatItemDetails(it, a.location()))
	return nil
}

// Post walks the user through the add-item form and publishes the listing
// at the current location.
func (a *App) Post(ctx context.Context, _ []string) error {
	if !a.requireLogin() {
		return nil
	}
	req, err := a.inputItem(ctx)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			a.println("Cancelled")
			return nil
		}
		return a.fail(ctx, err)
	}

	it, err := a.market.Post(ctx, req)
	if err != nil {
		return a.fail(ctx, err)
	}
	_, _ = a.notifications.ShowSuccess(ctx, "Inserzione pubblicata", it.Title,
		&models.Action{Label: "Vedi", URL: "show " + it.ID})
	a.printf("Published %s\n", it.ID)
	return nil
}

func (a *App) inputItem(ctx context.Context) (*api.CreateItemRequest, error) {
	catalog, err := a.market.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	kind, err := GetChoice(a.reader, "What are you offering?", kindOptions, a.out)
	if err != nil {
		return nil, err
	}
	categories, types := catalog.ObjectCategories, catalog.ObjectTypes
	if kind == "service" {
		categories, types = catalog.ServiceCategories, catalog.ServiceTypes
	}

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, ErrCancelled
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return nil, err
	}
	category, err := GetChoice(a.reader, "Category", categories, a.out)
	if err != nil {
		return nil, err
	}
	typ, err := GetChoice(a.reader, "Listing type", types, a.out)
	if err != nil {
		return nil, err
	}
	price, err := GetOptionalFloat(a.reader, "Price in EUR (empty for none)", a.out)
	if err != nil {
		return nil, err
	}
	hint, err := GetSimpleText(a.reader, "Address hint (optional)", a.out)
	if err != nil {
		return nil, err
	}

	loc := a.location()
	req := &api.CreateItemRequest{
		Title:       title,
		Description: description,
		Kind:        kind,
		Category:    category,
		Type:        typ,
		Price:       price,
		Lat:         loc.Lat,
		Lng:         loc.Lng,
		AddressHint: hint,
	}

	// services carry no pictures
	if kind == "object" {
		paths, err := GetSimpleText(a.reader, "Image files (space separated, up to 3, empty for none)", a.out)
		if err != nil {
			return nil, err
		}
		for i, p := range strings.Fields(paths) {
			if i == MaxImages {
				a.printf("Only the first %d images are used\n", MaxImages)
				break
			}
			url, err := a.market.Upload(ctx, p, false)
			if err != nil {
				return nil, err
			}
			req.ImageURLs = append(req.ImageURLs, url)
		}
	}
	return req, nil
}

func (a *App) Mine(ctx context.Context, _ []string) error {
	if !a.requireLogin() {
		return nil
	}
	items, err := a.market.Mine(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(items) == 0 {
		a.println("You have no listings yet (type 'post')")
		return nil
	}
	for _, it := range items {
		a.println(formatItemLine(it))
	}
	return nil
}

func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.println("Usage: status <id> <active|reserved|sold|completed|expired>")
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	if err := a.market.SetStatus(ctx, args[0], args[1]); err != nil {
		return a.fail(ctx, err)
	}
	a.printf("Item %s is now %s\n", args[0], args[1])
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: delete <id>")
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	if err := a.market.Delete(ctx, args[0]); err != nil {
		return a.fail(ctx, err)
	}
	a.printf("Deleted %s\n", args[0])
	return nil
}

// Upload sends a single image and prints its public URL. With --presigned
// the file goes straight to object storage.
func (a *App) Upload(ctx context.Context, args []string) error {
	var path string
	presigned := false
	for _, arg := range args {
		if arg == "--presigned" {
			presigned = true
			continue
		}
		path = arg
	}
	if path == "" {
		a.println("Usage: upload <file> [--presigned]")
		return nil
	}
	if !a.requireLogin() {
		return nil
	}
	url, err := a.market.Upload(ctx, path, presigned)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.println(url)
	return nil
}
