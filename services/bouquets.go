package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
)

// BouquetStore is the configurator persistence the bouquet service consumes.
// Lookups return (nil, nil) when the document does not exist.
type BouquetStore interface {
	FindTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.BouquetTemplate, error)
	FindFlowerByID(ctx context.Context, id primitive.ObjectID) (*models.Flower, error)
	FindWrapByID(ctx context.Context, id primitive.ObjectID) (*models.Wrap, error)
	FindRibbonByID(ctx context.Context, id primitive.ObjectID) (*models.Ribbon, error)
	InsertBouquet(ctx context.Context, cb *models.CustomBouquet) (*models.CustomBouquet, error)
}

// BouquetSelection is one flower placed in a template slot.
type BouquetSelection struct {
	SlotIndex int                `json:"slot_index"`
	FlowerID  primitive.ObjectID `json:"flower_id"`
}

// BouquetRequest is a user's custom bouquet assembly.
type BouquetRequest struct {
	UserID      string             `json:"user_id"`
	TemplateID  primitive.ObjectID `json:"template_id"`
	Items       []BouquetSelection `json:"items"`
	WrapID      primitive.ObjectID `json:"wrap_id,omitempty"`
	RibbonID    primitive.ObjectID `json:"ribbon_id,omitempty"`
	SnapshotURL string             `json:"snapshot_url,omitempty"`
}

// BouquetService prices and persists custom bouquets. Prices are snapshotted
// at assembly time; later edits to flowers or options do not reprice a saved
// bouquet.
type BouquetService struct {
	store BouquetStore
}

// NewBouquetService wires the bouquet service to its store.
func NewBouquetService(store BouquetStore) *BouquetService {
	return &BouquetService{store: store}
}

// Create validates the assembly against its template, prices every part, and
// persists the bouquet.
func (s *BouquetService) Create(ctx context.Context, req BouquetRequest) (*models.CustomBouquet, error) {
	if req.UserID == "" || req.TemplateID.IsZero() {
		return nil, fmt.Errorf("%w: userId and templateId required", ErrInvalidRequest)
	}

	template, err := s.store.FindTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	if template == nil {
		return nil, fmt.Errorf("%w: bouquet template", ErrNotFound)
	}
	if len(req.Items) != template.SlotCount {
		return nil, fmt.Errorf("%w: bouquet not fully filled (%d of %d slots)",
			ErrInvalidRequest, len(req.Items), template.SlotCount)
	}

	flowersTotal := 0.0
	priced := make([]models.BouquetSlotItem, 0, len(req.Items))
	for _, sel := range req.Items {
		flower, err := s.store.FindFlowerByID(ctx, sel.FlowerID)
		if err != nil {
			return nil, fmt.Errorf("loading flower: %w", err)
		}
		if flower == nil {
			return nil, fmt.Errorf("%w: flower %s", ErrNotFound, sel.FlowerID.Hex())
		}
		flowersTotal += flower.Price
		priced = append(priced, models.BouquetSlotItem{
			SlotIndex:  sel.SlotIndex,
			FlowerID:   flower.ID,
			FlowerName: flower.Name,
			UnitPrice:  flower.Price,
		})
	}

	var wrapOption *models.BouquetOption
	wrapPrice := 0.0
	if !req.WrapID.IsZero() {
		wrap, err := s.store.FindWrapByID(ctx, req.WrapID)
		if err != nil {
			return nil, fmt.Errorf("loading wrap: %w", err)
		}
		if wrap == nil {
			return nil, fmt.Errorf("%w: wrap %s", ErrNotFound, req.WrapID.Hex())
		}
		wrapPrice = wrap.Price
		wrapOption = &models.BouquetOption{OptionID: wrap.ID, Name: wrap.Name, Price: wrap.Price}
	}

	var ribbonOption *models.BouquetOption
	ribbonPrice := 0.0
	if !req.RibbonID.IsZero() {
		ribbon, err := s.store.FindRibbonByID(ctx, req.RibbonID)
		if err != nil {
			return nil, fmt.Errorf("loading ribbon: %w", err)
		}
		if ribbon == nil {
			return nil, fmt.Errorf("%w: ribbon %s", ErrNotFound, req.RibbonID.Hex())
		}
		ribbonPrice = ribbon.Price
		ribbonOption = &models.BouquetOption{OptionID: ribbon.ID, Name: ribbon.Name, Price: ribbon.Price}
	}

	bouquet := &models.CustomBouquet{
		UserID:      req.UserID,
		TemplateID:  template.ID,
		Items:       priced,
		Wrap:        wrapOption,
		Ribbon:      ribbonOption,
		SnapshotURL: req.SnapshotURL,
		Pricing: models.BouquetPricing{
			FlowersTotal: flowersTotal,
			WrapPrice:    wrapPrice,
			RibbonPrice:  ribbonPrice,
			GrandTotal:   flowersTotal + wrapPrice + ribbonPrice,
		},
	}
	return s.store.InsertBouquet(ctx, bouquet)
}
