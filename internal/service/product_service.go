package service

import (
	"context"
	"fmt"
	"time"

	"boutika/internal/catalog"
	"boutika/internal/model"
	"boutika/internal/repository"
	"boutika/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	uploader    storage.Uploader
	imagePrefix string
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	uploader storage.Uploader,
	imagePrefix string,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		uploader:    uploader,
		imagePrefix: imagePrefix,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List produces the visible product subset. A non-empty search term hits the
// substring query and skips the category filter; otherwise a non-"all"
// category hits the equality query. Sorting happens in-process.
func (s *productService) List(ctx context.Context, q catalog.Query) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)

	switch {
	case q.Search != "":
		products, err = s.productRepo.Search(ctx, q.Search)
	case q.Category != "" && q.Category != model.CategoryAll:
		products, err = s.productRepo.GetByCategory(ctx, q.Category)
	default:
		products, err = s.productRepo.GetAll(ctx)
	}
	if err != nil {
		s.logger.Error().Err(err).
			Str("search", q.Search).
			Str("category", q.Category).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products = catalog.SortProducts(products, q.Sort)

	s.logger.Debug().
		Int("count", len(products)).
		Str("sort", q.Sort).
		Msg("listed products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates the form, uploads the image, then inserts the record.
// The order matters: a failed upload aborts the create before any row
// exists, so a product can never be persisted with an empty image URL.
func (s *productService) Create(ctx context.Context, input model.ProductInput, image *ImageUpload) (*model.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if image == nil || image.Data == nil {
		s.logger.Warn().Str("name", input.Name).Msg("product create rejected: no image")
		return nil, model.ErrMissingImage
	}

	imageURL, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("name", product.Name).
		Str("category", product.Category).
		Msg("product created")

	return product, nil
}

// Update overwrites an existing product. A new image replaces the stored
// URL; omitting the image keeps it.
func (s *productService) Update(ctx context.Context, id string, input model.ProductInput, image *ImageUpload) (*model.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	if image != nil && image.Data != nil {
		imageURL, err = s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	product := &model.Product{
		ID:          existing.ID,
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		Description: input.Description,
		ImageURL:    imageURL,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

func (s *productService) uploadImage(ctx context.Context, image *ImageUpload) (string, error) {
	key := storage.ImageKey(s.imagePrefix, image.Filename)

	url, err := s.uploader.Upload(ctx, key, image.ContentType, image.Data)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", model.NewDomainError(model.ErrCodeImageUploadError, "Image upload failed")
	}

	return url, nil
}
