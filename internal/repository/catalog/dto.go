package catalog

import (
	"github.com/kailas-cloud/scentdex/internal/domain"
)

// fragranceDTO is the JSON blob layout for one catalog record. Field names
// follow the ingestion pipeline's vocabulary. The embedding is packed
// little-endian float32 and base64-encoded by encoding/json.
type fragranceDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	BrandTier       string   `json:"brand_tier,omitempty"`
	Embedding       []byte   `json:"embedding,omitempty"`
	Accords         []string `json:"accords"`
	SampleAvailable bool     `json:"sample_available"`
	SamplePriceUSD  float64  `json:"sample_price_usd,omitempty"`
	PriceTier       string   `json:"price_tier,omitempty"`
	RatingValue     float64  `json:"rating_value"`
	RatingCount     int      `json:"rating_count"`
}

func toDTO(item domain.FragranceItem) fragranceDTO {
	return fragranceDTO{
		ID:              item.ID,
		Name:            item.Name,
		Brand:           item.Brand,
		BrandTier:       string(item.BrandTier),
		Embedding:       domain.PackVector(item.Embedding),
		Accords:         item.Accords,
		SampleAvailable: item.SampleAvailable,
		SamplePriceUSD:  item.SamplePriceUSD,
		PriceTier:       string(item.PriceTier),
		RatingValue:     item.RatingValue,
		RatingCount:     item.RatingCount,
	}
}

func fromDTO(dto fragranceDTO) (domain.FragranceItem, error) {
	vec, err := domain.UnpackVector(dto.Embedding)
	if err != nil {
		return domain.FragranceItem{}, err
	}
	return domain.FragranceItem{
		ID:              dto.ID,
		Name:            dto.Name,
		Brand:           dto.Brand,
		BrandTier:       domain.PriceTier(dto.BrandTier),
		Embedding:       vec,
		Accords:         dto.Accords,
		SampleAvailable: dto.SampleAvailable,
		SamplePriceUSD:  dto.SamplePriceUSD,
		PriceTier:       domain.PriceTier(dto.PriceTier),
		RatingValue:     dto.RatingValue,
		RatingCount:     dto.RatingCount,
	}, nil
}
