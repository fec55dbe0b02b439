package repository

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/httpclient"
)

// CriteriaRepository reads the two-level criteria taxonomy.
type CriteriaRepository struct {
	client httpclient.Client
}

// NewCriteriaRepository creates a new instance of CriteriaRepository.
func NewCriteriaRepository(client httpclient.Client) *CriteriaRepository {
	return &CriteriaRepository{client: client}
}

// ListMain returns every main criteria.
func (r *CriteriaRepository) ListMain(ctx context.Context) ([]models.MainCriteria, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, httpclient.Request{Route: routeMainCriteria, Path: routeMainCriteria}, &raw); err != nil {
		return nil, err
	}
	items := make([]models.MainCriteria, 0)
	if err := unwrapList(raw, &items, "data"); err != nil {
		return nil, err
	}
	return items, nil
}

// ListSub returns every sub criteria.
func (r *CriteriaRepository) ListSub(ctx context.Context) ([]models.SubCriteria, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, httpclient.Request{Route: routeSubCriteria, Path: routeSubCriteria}, &raw); err != nil {
		return nil, err
	}
	items := make([]models.SubCriteria, 0)
	if err := unwrapList(raw, &items, "data"); err != nil {
		return nil, err
	}
	return items, nil
}
