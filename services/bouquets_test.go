package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"elvastore-api/models"
)

type fakeBouquetStore struct {
	templates map[primitive.ObjectID]*models.BouquetTemplate
	flowers   map[primitive.ObjectID]*models.Flower
	wraps     map[primitive.ObjectID]*models.Wrap
	ribbons   map[primitive.ObjectID]*models.Ribbon
	inserted  *models.CustomBouquet
}

func newFakeBouquetStore() *fakeBouquetStore {
	return &fakeBouquetStore{
		templates: map[primitive.ObjectID]*models.BouquetTemplate{},
		flowers:   map[primitive.ObjectID]*models.Flower{},
		wraps:     map[primitive.ObjectID]*models.Wrap{},
		ribbons:   map[primitive.ObjectID]*models.Ribbon{},
	}
}

func (f *fakeBouquetStore) FindTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.BouquetTemplate, error) {
	return f.templates[id], nil
}

func (f *fakeBouquetStore) FindFlowerByID(ctx context.Context, id primitive.ObjectID) (*models.Flower, error) {
	return f.flowers[id], nil
}

func (f *fakeBouquetStore) FindWrapByID(ctx context.Context, id primitive.ObjectID) (*models.Wrap, error) {
	return f.wraps[id], nil
}

func (f *fakeBouquetStore) FindRibbonByID(ctx context.Context, id primitive.ObjectID) (*models.Ribbon, error) {
	return f.ribbons[id], nil
}

func (f *fakeBouquetStore) InsertBouquet(ctx context.Context, cb *models.CustomBouquet) (*models.CustomBouquet, error) {
	cb.ID = primitive.NewObjectID()
	f.inserted = cb
	return cb, nil
}

func TestCreateBouquetPricesAllParts(t *testing.T) {
	store := newFakeBouquetStore()

	template := &models.BouquetTemplate{ID: primitive.NewObjectID(), Name: "Round Small", SlotCount: 2}
	store.templates[template.ID] = template

	rose := &models.Flower{ID: primitive.NewObjectID(), Name: "Rose", Price: 6}
	lily := &models.Flower{ID: primitive.NewObjectID(), Name: "Lily", Price: 8}
	store.flowers[rose.ID] = rose
	store.flowers[lily.ID] = lily

	wrap := &models.Wrap{ID: primitive.NewObjectID(), Name: "Kraft", Price: 5}
	ribbon := &models.Ribbon{ID: primitive.NewObjectID(), Name: "Satin", Price: 3}
	store.wraps[wrap.ID] = wrap
	store.ribbons[ribbon.ID] = ribbon

	svc := NewBouquetService(store)
	bouquet, err := svc.Create(context.Background(), BouquetRequest{
		UserID:     "user-1",
		TemplateID: template.ID,
		Items: []BouquetSelection{
			{SlotIndex: 0, FlowerID: rose.ID},
			{SlotIndex: 1, FlowerID: lily.ID},
		},
		WrapID:   wrap.ID,
		RibbonID: ribbon.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 14.0, bouquet.Pricing.FlowersTotal)
	assert.Equal(t, 5.0, bouquet.Pricing.WrapPrice)
	assert.Equal(t, 3.0, bouquet.Pricing.RibbonPrice)
	assert.Equal(t, 22.0, bouquet.Pricing.GrandTotal)
	require.Len(t, bouquet.Items, 2)
	assert.Equal(t, "Rose", bouquet.Items[0].FlowerName)
	assert.Equal(t, 6.0, bouquet.Items[0].UnitPrice)
	require.NotNil(t, store.inserted)
}

func TestCreateBouquetRequiresFullTemplate(t *testing.T) {
	store := newFakeBouquetStore()
	template := &models.BouquetTemplate{ID: primitive.NewObjectID(), SlotCount: 3}
	store.templates[template.ID] = template
	rose := &models.Flower{ID: primitive.NewObjectID(), Name: "Rose", Price: 6}
	store.flowers[rose.ID] = rose

	svc := NewBouquetService(store)
	_, err := svc.Create(context.Background(), BouquetRequest{
		UserID:     "user-1",
		TemplateID: template.ID,
		Items:      []BouquetSelection{{SlotIndex: 0, FlowerID: rose.ID}},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateBouquetUnknownParts(t *testing.T) {
	store := newFakeBouquetStore()
	template := &models.BouquetTemplate{ID: primitive.NewObjectID(), SlotCount: 1}
	store.templates[template.ID] = template

	svc := NewBouquetService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, BouquetRequest{
		UserID:     "user-1",
		TemplateID: template.ID,
		Items:      []BouquetSelection{{SlotIndex: 0, FlowerID: primitive.NewObjectID()}},
	})
	assert.ErrorIs(t, err, ErrNotFound, "unknown flower")

	_, err = svc.Create(ctx, BouquetRequest{
		UserID:     "user-1",
		TemplateID: primitive.NewObjectID(),
	})
	assert.ErrorIs(t, err, ErrNotFound, "unknown template")
}

func TestCreateBouquetWithoutOptions(t *testing.T) {
	store := newFakeBouquetStore()
	template := &models.BouquetTemplate{ID: primitive.NewObjectID(), SlotCount: 1}
	store.templates[template.ID] = template
	rose := &models.Flower{ID: primitive.NewObjectID(), Name: "Rose", Price: 6}
	store.flowers[rose.ID] = rose

	svc := NewBouquetService(store)
	bouquet, err := svc.Create(context.Background(), BouquetRequest{
		UserID:     "user-1",
		TemplateID: template.ID,
		Items:      []BouquetSelection{{SlotIndex: 0, FlowerID: rose.ID}},
	})
	require.NoError(t, err)
	assert.Nil(t, bouquet.Wrap)
	assert.Nil(t, bouquet.Ribbon)
	assert.Equal(t, 6.0, bouquet.Pricing.GrandTotal)
}
