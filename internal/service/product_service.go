package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"poppes-store/internal/model"
	"poppes-store/internal/repository"
	"poppes-store/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// featuredCount is the size of the in-stock selection on the home view.
const featuredCount = 4

// defaultListLimit caps catalogue queries that do not ask for a limit.
const defaultListLimit = 50

// productService implements ProductService.
type productService struct {
	repo     repository.ProductRepository
	uploader storage.Uploader
	logger   zerolog.Logger
}

// NewProductService creates a new product service. The uploader may be
// nil, in which case image uploads are rejected.
func NewProductService(repo repository.ProductRepository, uploader storage.Uploader, logger zerolog.Logger) ProductService {
	return &productService{
		repo:     repo,
		uploader: uploader,
		logger:   logger.With().Str("service", "product").Logger(),
	}
}

// Browse retrieves products according to the list options.
func (s *productService) Browse(ctx context.Context, opts repository.ListOptions) ([]model.Product, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.SortBy == "" {
		opts.SortBy = repository.SortByCreatedAt
		opts.SortDesc = true
	}

	return s.repo.List(ctx, opts)
}

// Featured retrieves a short in-stock selection for the home view.
func (s *productService) Featured(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx, repository.ListOptions{
		InStockOnly: true,
		SortBy:      repository.SortByCreatedAt,
		SortDesc:    true,
		Limit:       featuredCount,
	})
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	p := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		InStock:     req.InStock,
		Category:    req.Category,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return p, nil
}

// Update overwrites a product's fields. Last write wins.
func (s *productService) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	p := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		InStock:     req.InStock,
		Category:    req.Category,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return p, nil
}

// Delete removes a product from the catalogue.
func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// AttachImage uploads an image for the product and stores its URL on the
// record.
func (s *productService) AttachImage(ctx context.Context, id, filename string, r io.Reader, size int64, contentType string) (*model.Product, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}

	object := fmt.Sprintf("%s%s", id, path.Ext(filename))
	url, err := s.uploader.Upload(ctx, object, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store product image: %w", err)
	}

	p.Image = url
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Str("image", url).Msg("product image attached")
	return p, nil
}

// validateProductRequest checks the admin payload for a product write.
func validateProductRequest(req *model.ProductRequest) error {
	if req == nil {
		return fmt.Errorf("product request is nil")
	}
	if req.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if req.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	if req.Quantity < 0 {
		return fmt.Errorf("product quantity cannot be negative")
	}
	return nil
}
