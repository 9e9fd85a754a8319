package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"cantinho-algarvio/internal/domain"
)

var ErrUnknownReference = errors.New("unknown reference entry")

// Built-in defaults served when the reference tables are unreachable or
// empty, so checkout never loses its delivery and payment options.
var (
	defaultDeliveryZones = []domain.DeliveryLocation{
		{ID: "centro", Name: "Centro da Cidade", Fee: 1000, EstimatedTime: "30-45 min"},
		{ID: "talatona", Name: "Talatona", Fee: 1500, EstimatedTime: "45-60 min"},
		{ID: "kilamba", Name: "Kilamba", Fee: 2000, EstimatedTime: "60-90 min"},
	}

	defaultPaymentMethods = []domain.PaymentMethod{
		{ID: "cash", Name: "Dinheiro na Entrega", Icon: "banknote"},
		{ID: "transfer", Name: "Transferência Bancária", Icon: "bank"},
		{ID: "multicaixa", Name: "Multicaixa Express", Icon: "smartphone"},
	}

	defaultSettings = domain.CompanySettings{
		Name:         "Cantinho Algarvio",
		Phone:        "+244 923 000 000",
		Address:      "Luanda, Angola",
		OpeningHours: "10:00 - 22:00",
	}
)

// ReferenceService serves read-mostly checkout reference data. Each read
// tries the database first and degrades to the built-in defaults on failure;
// the degradation is logged, never silent.
type ReferenceService struct {
	repo ReferenceRepository
}

func NewReferenceService(repo ReferenceRepository) *ReferenceService {
	return &ReferenceService{repo: repo}
}

func (s *ReferenceService) DeliveryZones(ctx context.Context) ([]domain.DeliveryLocation, error) {
	zones, err := s.repo.ListDeliveryZones(ctx)
	if err != nil {
		log.Printf("[reference] delivery zones unavailable, using defaults: %v", err)
		return defaultDeliveryZones, nil
	}
	return zones, nil
}

func (s *ReferenceService) DeliveryZone(ctx context.Context, id string) (*domain.DeliveryLocation, error) {
	zones, err := s.DeliveryZones(ctx)
	if err != nil {
		return nil, err
	}
	for i := range zones {
		if zones[i].ID == id {
			return &zones[i], nil
		}
	}
	return nil, ErrUnknownReference
}

func (s *ReferenceService) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.repo.ListPaymentMethods(ctx)
	if err != nil {
		log.Printf("[reference] payment methods unavailable, using defaults: %v", err)
		return defaultPaymentMethods, nil
	}
	return methods, nil
}

func (s *ReferenceService) PaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	methods, err := s.PaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range methods {
		if methods[i].ID == id {
			return &methods[i], nil
		}
	}
	return nil, ErrUnknownReference
}

func (s *ReferenceService) CompanySettings(ctx context.Context) (*domain.CompanySettings, error) {
	settings, err := s.repo.GetCompanySettings(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[reference] company settings unavailable, using defaults: %v", err)
		}
		fallback := defaultSettings
		return &fallback, nil
	}
	return settings, nil
}
