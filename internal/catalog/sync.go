package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"storefront/internal/models"
)

const defaultCategory = "electronics"

type ProductStore interface {
	UpsertAll(ctx context.Context, products []models.Product) error
}

// Syncer pulls product listings from the upstream catalog API and mirrors
// them into the product store.
type Syncer struct {
	Client     *http.Client
	BaseURL    string
	Categories []string
	Products   ProductStore
	Log        zerolog.Logger
}

type sourceProduct struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Images    []string `json:"images"`
	Thumbnail string   `json:"thumbnail"`
	Category  string   `json:"category"`
}

type sourceListing struct {
	Products []sourceProduct `json:"products"`
}

// Sync fetches every configured category concurrently. Any failing source
// aborts the whole run before a single row is written, so a partial upstream
// outage never corrupts the stored catalog.
func (s *Syncer) Sync(ctx context.Context) error {
	listings := make([]sourceListing, len(s.Categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range s.Categories {
		i, cat := i, cat
		g.Go(func() error {
			listing, err := s.fetchCategory(gctx, cat)
			if err != nil {
				return err
			}
			listings[i] = listing
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &models.UpstreamError{Op: "catalog sync", Err: err}
	}

	var products []models.Product
	for _, l := range listings {
		for _, p := range l.Products {
			products = append(products, mapProduct(p))
		}
	}
	if err := s.Products.UpsertAll(ctx, products); err != nil {
		return err
	}
	s.Log.Info().Int("count", len(products)).Msg("catalog synced")
	return nil
}

func (s *Syncer) fetchCategory(ctx context.Context, category string) (sourceListing, error) {
	u := fmt.Sprintf("%s/products/category/%s", s.BaseURL, url.PathEscape(category))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return sourceListing{}, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return sourceListing{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return sourceListing{}, fmt.Errorf("fetch %s: status %d", category, resp.StatusCode)
	}
	var listing sourceListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return sourceListing{}, fmt.Errorf("decode %s: %w", category, err)
	}
	return listing, nil
}

func mapProduct(p sourceProduct) models.Product {
	image := p.Thumbnail
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	category := p.Category
	if category == "" {
		category = defaultCategory
	}
	return models.Product{
		ID:       fmt.Sprintf("dj_%d", p.ID),
		Name:     p.Title,
		Price:    int64(math.Round(p.Price * 100)),
		Image:    image,
		Category: category,
	}
}
