package apiclient

import (
	"context"
	"fmt"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/mapping"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

// ProductService wraps the product CRUD endpoints
type ProductService struct {
	c *Client
}

// Products returns the product endpoints
func (c *Client) Products() *ProductService {
	return &ProductService{c: c}
}

// List fetches all products matching the optional server-side params
func (s *ProductService) List(ctx context.Context, params Params) ([]domain.Product, error) {
	resp, err := s.c.Get(ctx, "/products", params)
	if err != nil {
		return nil, err
	}
	body, err := decode[[]wire.Product](resp, "products")
	if err != nil {
		return nil, err
	}
	return mapping.Products(body), nil
}

// Get fetches one product
func (s *ProductService) Get(ctx context.Context, id int) (domain.Product, error) {
	resp, err := s.c.Get(ctx, productPath(id), nil)
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(resp)
}

// Create submits a new product. The form must already be validated.
func (s *ProductService) Create(ctx context.Context, form domain.ProductForm) (domain.Product, error) {
	resp, err := s.c.Post(ctx, "/products", mapping.CreateProductRequest(form))
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(resp)
}

// Update replaces the name and metadata of a product
func (s *ProductService) Update(ctx context.Context, id int, name string, form domain.ProductForm) (domain.Product, error) {
	resp, err := s.c.Put(ctx, productPath(id), mapping.UpdateProductRequest(name, form))
	if err != nil {
		return domain.Product{}, err
	}
	return decodeProduct(resp)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id int) error {
	_, err := s.c.Delete(ctx, productPath(id))
	return err
}

// Search runs the server-side product search
func (s *ProductService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	resp, err := s.c.Get(ctx, "/products/search", Params{"q": query})
	if err != nil {
		return nil, err
	}
	body, err := decode[[]wire.Product](resp, "product search")
	if err != nil {
		return nil, err
	}
	return mapping.Products(body), nil
}

// Scripts lists the automation scripts that can be bound to pipeline stages
func (s *ProductService) Scripts(ctx context.Context) ([]domain.Script, error) {
	resp, err := s.c.Get(ctx, "/github_scripts", nil)
	if err != nil {
		return nil, err
	}
	body, err := decode[wire.ScriptsResponse](resp, "scripts")
	if err != nil {
		return nil, err
	}
	return mapping.Scripts(body), nil
}

func productPath(id int) string {
	return fmt.Sprintf("/products/%d", id)
}

func decodeProduct(resp *Response) (domain.Product, error) {
	body, err := decode[wire.Product](resp, "product")
	if err != nil {
		return domain.Product{}, err
	}
	return mapping.Product(body), nil
}
